// Package format reshapes decoded command results into their natural Go
// values: integer flags become booleans, flat field-value lists become maps,
// score strings become floats, cursor replies become typed pages.
//
// The mapping from command name to reply shape is a closed table. Commands
// without an entry pass their result through untouched, so an unknown or
// future command is never an error. Flag-dependent shapes (WITHSCORES, GET,
// INCR, WITHVALUES and the geo WITH* flags) inspect the original command
// tokens to pick the right transform.
package format

import (
	"fmt"
	"strings"

	"github.com/upstash/redis-go/internal/protocol"
)

// shape categorizes every reply transform the table can select.
type shape int

const (
	shapeBoolFromInt shape = iota
	shapeOKToBool
	shapeBoolList
	shapeOptionalBoolList
	shapePairMap
	shapeMemberScores
	shapeCursorKeys
	shapeCursorFields
	shapeCursorScores
	shapeFloat
	shapeOptionalFloat
	shapeOptionalFloatList
	shapeTimePair
	shapeGeoPositions
	shapeGeoSearch
	shapeJSONDocument
	shapeJSONList
	shapeEmptyListOnNil
	shapeScoresByFlag
	shapeSetByFlag
	shapeZAddByFlag
	shapeHRandFieldByFlag
)

// table maps a dispatch name (protocol.Name) to its reply shape. Container
// commands appear with their subcommand.
var table = map[string]shape{
	// Integer 0/1 replies meaning no/yes.
	"COPY":                  shapeBoolFromInt,
	"EXPIRE":                shapeBoolFromInt,
	"EXPIREAT":              shapeBoolFromInt,
	"PERSIST":               shapeBoolFromInt,
	"PEXPIRE":               shapeBoolFromInt,
	"PEXPIREAT":             shapeBoolFromInt,
	"RENAMENX":              shapeBoolFromInt,
	"HEXISTS":               shapeBoolFromInt,
	"HSETNX":                shapeBoolFromInt,
	"PFADD":                 shapeBoolFromInt,
	"SISMEMBER":             shapeBoolFromInt,
	"SMOVE":                 shapeBoolFromInt,
	"SETNX":                 shapeBoolFromInt,
	"MSETNX":                shapeBoolFromInt,
	"XGROUP DESTROY":        shapeBoolFromInt,
	"XGROUP CREATECONSUMER": shapeBoolFromInt,

	// Status replies meaning success.
	"RENAME":       shapeOKToBool,
	"JSON.MERGE":   shapeOKToBool,
	"JSON.MSET":    shapeOKToBool,
	"JSON.SET":     shapeOKToBool,
	"PFMERGE":      shapeOKToBool,
	"FLUSHALL":     shapeOKToBool,
	"FLUSHDB":      shapeOKToBool,
	"PSETEX":       shapeOKToBool,
	"SETEX":        shapeOKToBool,
	"MSET":         shapeOKToBool,
	"HMSET":        shapeOKToBool,
	"LSET":         shapeOKToBool,
	"SCRIPT FLUSH": shapeOKToBool,

	// Cursor-led scan pages.
	"SCAN":  shapeCursorKeys,
	"SSCAN": shapeCursorKeys,
	"HSCAN": shapeCursorFields,
	"ZSCAN": shapeCursorScores,

	// Flat field-value pair lists.
	"HGETALL":       shapePairMap,
	"PUBSUB NUMSUB": shapePairMap,

	// Score strings.
	"GEODIST":       shapeOptionalFloat,
	"ZSCORE":        shapeOptionalFloat,
	"HINCRBYFLOAT":  shapeFloat,
	"ZINCRBY":       shapeFloat,
	"INCRBYFLOAT":   shapeFloat,
	"ZMSCORE":       shapeOptionalFloatList,
	"ZPOPMAX":       shapeMemberScores,
	"ZPOPMIN":       shapeMemberScores,

	// Member lists that carry scores only when WITHSCORES was sent.
	"ZDIFF":            shapeScoresByFlag,
	"ZINTER":           shapeScoresByFlag,
	"ZRANDMEMBER":      shapeScoresByFlag,
	"ZRANGE":           shapeScoresByFlag,
	"ZRANGEBYSCORE":    shapeScoresByFlag,
	"ZREVRANGE":        shapeScoresByFlag,
	"ZREVRANGEBYSCORE": shapeScoresByFlag,
	"ZUNION":           shapeScoresByFlag,

	"ZADD": shapeZAddByFlag,
	"SET":  shapeSetByFlag,

	// Geo replies.
	"GEOPOS":               shapeGeoPositions,
	"GEOSEARCH":            shapeGeoSearch,
	"GEORADIUS":            shapeGeoSearch,
	"GEORADIUS_RO":         shapeGeoSearch,
	"GEORADIUSBYMEMBER":    shapeGeoSearch,
	"GEORADIUSBYMEMBER_RO": shapeGeoSearch,

	"HRANDFIELD": shapeHRandFieldByFlag,
	"TIME":       shapeTimePair,

	"SMISMEMBER":    shapeBoolList,
	"SCRIPT EXISTS": shapeBoolList,
	"JSON.TOGGLE":   shapeOptionalBoolList,

	// JSON documents arrive as serialized strings.
	"JSON.GET":       shapeJSONDocument,
	"JSON.NUMINCRBY": shapeJSONDocument,
	"JSON.NUMMULTBY": shapeJSONDocument,
	"JSON.ARRPOP":    shapeJSONList,
	"JSON.MGET":      shapeJSONList,

	// Stream reads report nil when nothing arrived.
	"XREAD":      shapeEmptyListOnNil,
	"XREADGROUP": shapeEmptyListOnNil,
}

// Apply reshapes a decoded result according to the command that produced
// it. Results of commands without a table entry are returned untouched. A
// result that violates its shape's contract (odd pair list, boolean integer
// outside 0/1, unparseable score) returns a *ContractError.
func Apply(cmd protocol.Command, raw any) (any, error) {
	name := protocol.Name(cmd)
	sh, ok := table[name]
	if !ok {
		return raw, nil
	}

	switch sh {
	case shapeBoolFromInt:
		return toBool(name, raw)
	case shapeOKToBool:
		return raw == "OK", nil
	case shapeBoolList:
		return toBoolList(name, raw)
	case shapeOptionalBoolList:
		return toOptionalBoolList(name, raw)
	case shapePairMap:
		return toPairMap(name, raw)
	case shapeMemberScores:
		return toMemberScores(name, raw)
	case shapeCursorKeys:
		return toScanResult(name, raw)
	case shapeCursorFields:
		return toHScanResult(name, raw)
	case shapeCursorScores:
		return toZScanResult(name, raw)
	case shapeFloat:
		return toFloat(name, raw)
	case shapeOptionalFloat:
		return toOptionalFloat(name, raw)
	case shapeOptionalFloatList:
		return toOptionalFloatList(name, raw)
	case shapeTimePair:
		return toTimeResult(name, raw)
	case shapeGeoPositions:
		return toGeoPositions(name, raw)
	case shapeGeoSearch:
		return toGeoSearch(name, raw,
			hasFlag(cmd, 1, "WITHDIST"),
			hasFlag(cmd, 1, "WITHHASH"),
			hasFlag(cmd, 1, "WITHCOORD"))
	case shapeJSONDocument:
		return toJSONDocument(name, raw)
	case shapeJSONList:
		return toJSONList(name, raw)
	case shapeEmptyListOnNil:
		if raw == nil {
			return []any{}, nil
		}
		return raw, nil
	case shapeScoresByFlag:
		if hasFlag(cmd, 1, "WITHSCORES") {
			return toMemberScores(name, raw)
		}
		return raw, nil
	case shapeZAddByFlag:
		if hasFlag(cmd, 1, "INCR") {
			return toOptionalFloat(name, raw)
		}
		return raw, nil
	case shapeSetByFlag:
		// The GET option can only appear after the value token.
		if hasFlag(cmd, 3, "GET") {
			return raw, nil
		}
		return raw == "OK", nil
	case shapeHRandFieldByFlag:
		if hasFlag(cmd, 1, "WITHVALUES") {
			return toPairMap(name, raw)
		}
		return raw, nil
	}
	return raw, nil
}

// hasFlag reports whether one of the command tokens from index from on
// equals the flag, ignoring case.
func hasFlag(cmd protocol.Command, from int, flag string) bool {
	for i := from; i < len(cmd); i++ {
		s, ok := cmd[i].(string)
		if ok && strings.EqualFold(s, flag) {
			return true
		}
	}
	return false
}

// ContractError reports a reply that does not fit the shape its command is
// documented to produce.
type ContractError struct {
	Command string
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("malformed %s reply: %s", e.Command, e.Message)
}

func contractErr(command, format string, args ...any) *ContractError {
	return &ContractError{Command: command, Message: fmt.Sprintf(format, args...)}
}
