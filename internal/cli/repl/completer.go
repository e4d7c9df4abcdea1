package repl

import "strings"

// commandNames lists the commands offered for tab completion. The REST
// API accepts anything; this is a convenience list, not a gate.
var commandNames = []string{
	"APPEND", "DECR", "DECRBY", "GET", "GETDEL", "GETEX", "GETRANGE",
	"GETSET", "INCR", "INCRBY", "INCRBYFLOAT", "MGET", "MSET", "MSETNX",
	"PSETEX", "SET", "SETEX", "SETNX", "SETRANGE", "STRLEN",

	"COPY", "DEL", "EXISTS", "EXPIRE", "EXPIREAT", "KEYS", "PERSIST",
	"PEXPIRE", "PEXPIREAT", "PTTL", "RANDOMKEY", "RENAME", "RENAMENX",
	"SCAN", "TOUCH", "TTL", "TYPE", "UNLINK",

	"HDEL", "HEXISTS", "HGET", "HGETALL", "HINCRBY", "HINCRBYFLOAT",
	"HKEYS", "HLEN", "HMGET", "HMSET", "HRANDFIELD", "HSCAN", "HSET",
	"HSETNX", "HVALS",

	"LINDEX", "LINSERT", "LLEN", "LMOVE", "LPOP", "LPOS", "LPUSH",
	"LPUSHX", "LRANGE", "LREM", "LSET", "LTRIM", "RPOP", "RPOPLPUSH",
	"RPUSH", "RPUSHX",

	"SADD", "SCARD", "SDIFF", "SDIFFSTORE", "SINTER", "SINTERSTORE",
	"SISMEMBER", "SMEMBERS", "SMISMEMBER", "SMOVE", "SPOP", "SRANDMEMBER",
	"SREM", "SSCAN", "SUNION", "SUNIONSTORE",

	"ZADD", "ZCARD", "ZCOUNT", "ZDIFF", "ZDIFFSTORE", "ZINCRBY", "ZINTER",
	"ZINTERSTORE", "ZLEXCOUNT", "ZMSCORE", "ZPOPMAX", "ZPOPMIN",
	"ZRANDMEMBER", "ZRANGE", "ZRANGEBYLEX", "ZRANGEBYSCORE", "ZRANK",
	"ZREM", "ZREMRANGEBYLEX", "ZREMRANGEBYRANK", "ZREMRANGEBYSCORE",
	"ZREVRANGE", "ZREVRANGEBYSCORE", "ZREVRANK", "ZSCAN", "ZSCORE",
	"ZUNION", "ZUNIONSTORE",

	"BITCOUNT", "BITFIELD", "BITFIELD_RO", "BITOP", "BITPOS", "GETBIT",
	"SETBIT",

	"GEOADD", "GEODIST", "GEOHASH", "GEOPOS", "GEOSEARCH",
	"GEOSEARCHSTORE",

	"PFADD", "PFCOUNT", "PFMERGE",

	"PUBLISH", "PUBSUB",

	"EVAL", "EVALSHA", "SCRIPT",

	"DBSIZE", "ECHO", "FLUSHALL", "FLUSHDB", "PING", "TIME",

	"JSON.ARRAPPEND", "JSON.ARRINDEX", "JSON.ARRINSERT", "JSON.ARRLEN",
	"JSON.ARRPOP", "JSON.ARRTRIM", "JSON.CLEAR", "JSON.DEL", "JSON.GET",
	"JSON.MERGE", "JSON.MGET", "JSON.NUMINCRBY", "JSON.NUMMULTBY",
	"JSON.OBJKEYS", "JSON.OBJLEN", "JSON.SET", "JSON.STRAPPEND",
	"JSON.STRLEN", "JSON.TOGGLE", "JSON.TYPE",

	"XACK", "XADD", "XDEL", "XGROUP", "XLEN", "XPENDING", "XRANGE",
	"XREAD", "XREADGROUP", "XREVRANGE", "XTRIM",

	"HELP", "EXIT", "QUIT",
}

// completer implements readline.AutoCompleter for the first word.
type completer struct{}

// Do returns completion candidates for the current input.
func (completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	// Only complete the command word.
	if strings.Contains(text, " ") {
		return nil, 0
	}

	upper := strings.ToUpper(text)
	for _, cmd := range commandNames {
		if strings.HasPrefix(cmd, upper) {
			newLine = append(newLine, []rune(cmd[len(upper):]+" "))
		}
	}
	return newLine, len(text)
}
