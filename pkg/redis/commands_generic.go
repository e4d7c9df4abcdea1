package redis

import (
	"context"
	"time"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// Del removes the given keys and returns how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	cmd := protocol.Command{"DEL"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Unlink removes the given keys without blocking on reclamation.
func (c *Client) Unlink(ctx context.Context, keys ...string) (int64, error) {
	cmd := protocol.Command{"UNLINK"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Exists reports how many of the given keys exist, counting repeats.
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	cmd := protocol.Command{"EXISTS"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Expire sets a relative expiry on key. It reports false when the key does
// not exist.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"EXPIRE", key, seconds(ttl)})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// ExpireAt expires key at an absolute time.
func (c *Client) ExpireAt(ctx context.Context, key string, at time.Time) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"EXPIREAT", key, at.Unix()})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// PExpire is Expire with millisecond resolution.
func (c *Client) PExpire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"PEXPIRE", key, millis(ttl)})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// PExpireAt is ExpireAt with millisecond resolution.
func (c *Client) PExpireAt(ctx context.Context, key string, at time.Time) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"PEXPIREAT", key, at.UnixMilli()})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// Persist removes the expiry from key.
func (c *Client) Persist(ctx context.Context, key string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"PERSIST", key})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// TTL returns the remaining time to live of key in seconds: -1 when the
// key has no expiry, -2 when it does not exist.
func (c *Client) TTL(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"TTL", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// PTTL is TTL in milliseconds.
func (c *Client) PTTL(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"PTTL", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Keys returns every key matching pattern. Prefer Scan on large
// databases.
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"KEYS", pattern})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// RandomKey returns a random key, or ErrNil on an empty database.
func (c *Client) RandomKey(ctx context.Context) (string, error) {
	res, err := c.run(ctx, protocol.Command{"RANDOMKEY"})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// Rename renames key to newKey, overwriting an existing newKey.
func (c *Client) Rename(ctx context.Context, key, newKey string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"RENAME", key, newKey})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// RenameNX renames key only when newKey does not exist.
func (c *Client) RenameNX(ctx context.Context, key, newKey string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"RENAMENX", key, newKey})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// Copy copies the value at src to dst. With replace an existing dst is
// overwritten.
func (c *Client) Copy(ctx context.Context, src, dst string, replace bool) (bool, error) {
	cmd := protocol.Command{"COPY", src, dst}
	if replace {
		cmd = append(cmd, "REPLACE")
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// Touch updates the access time of the given keys and reports how many
// exist.
func (c *Client) Touch(ctx context.Context, keys ...string) (int64, error) {
	cmd := protocol.Command{"TOUCH"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Type returns the type of the value at key ("string", "list", "set",
// "zset", "hash", "stream", or "none").
func (c *Client) Type(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"TYPE", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// Scan iterates the key space one page at a time. Start with cursor 0 and
// feed the returned cursor back in until it is 0 again. An empty match
// pattern and a zero count leave paging to the server.
func (c *Client) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	cmd := protocol.Command{"SCAN", cursor}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	return c.scanPage(ctx, cmd)
}

// ScanType is Scan restricted to keys of one type.
func (c *Client) ScanType(ctx context.Context, cursor uint64, match string, count int64, keyType string) ([]string, uint64, error) {
	cmd := protocol.Command{"SCAN", cursor}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	cmd = append(cmd, "TYPE", keyType)
	return c.scanPage(ctx, cmd)
}

func (c *Client) scanPage(ctx context.Context, cmd protocol.Command) ([]string, uint64, error) {
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, 0, err
	}
	page, ok := res.(format.ScanResult)
	if !ok {
		return nil, 0, replyTypeErr(res, "scan page")
	}
	return page.Keys, page.Cursor, nil
}
