package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// HDel removes the given fields from the hash at key and returns how many
// existed.
func (c *Client) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	if len(fields) == 0 {
		return 0, validationErr("HDEL", "at least one field is required")
	}
	cmd := protocol.Command{"HDEL", key}
	for _, f := range fields {
		cmd = append(cmd, f)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// HExists reports whether field exists in the hash at key.
func (c *Client) HExists(ctx context.Context, key, field string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"HEXISTS", key, field})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// HGet returns the value of field in the hash at key, or ErrNil when the
// field does not exist.
func (c *Client) HGet(ctx context.Context, key, field string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"HGET", key, field})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// HGetAll returns every field and value of the hash at key. A missing key
// yields an empty map.
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	res, err := c.run(ctx, protocol.Command{"HGETALL", key})
	if err != nil {
		return nil, err
	}
	return asStringMap(res)
}

// HIncrBy increments the integer stored at field by increment.
func (c *Client) HIncrBy(ctx context.Context, key, field string, increment int64) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"HINCRBY", key, field, increment})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// HIncrByFloat increments the number stored at field by increment.
func (c *Client) HIncrByFloat(ctx context.Context, key, field string, increment float64) (float64, error) {
	res, err := c.run(ctx, protocol.Command{"HINCRBYFLOAT", key, field, increment})
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// HKeys returns every field name of the hash at key.
func (c *Client) HKeys(ctx context.Context, key string) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"HKEYS", key})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// HLen returns the number of fields in the hash at key.
func (c *Client) HLen(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"HLEN", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// HMGet returns the values of the given fields in order; a nil entry means
// the field does not exist.
func (c *Client) HMGet(ctx context.Context, key string, fields ...string) ([]*string, error) {
	if len(fields) == 0 {
		return nil, validationErr("HMGET", "at least one field is required")
	}
	cmd := protocol.Command{"HMGET", key}
	for _, f := range fields {
		cmd = append(cmd, f)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asOptionalStringSlice(res)
}

// HSet stores every field-value pair of values in the hash at key and
// returns how many fields were newly created.
func (c *Client) HSet(ctx context.Context, key string, values map[string]any) (int64, error) {
	if len(values) == 0 {
		return 0, validationErr("HSET", "at least one field is required")
	}
	cmd := protocol.Command{"HSET", key}
	for _, f := range sortedKeys(values) {
		cmd = append(cmd, f, values[f])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// HMSet is HSet with a status reply, kept for parity with older servers.
func (c *Client) HMSet(ctx context.Context, key string, values map[string]any) (bool, error) {
	if len(values) == 0 {
		return false, validationErr("HMSET", "at least one field is required")
	}
	cmd := protocol.Command{"HMSET", key}
	for _, f := range sortedKeys(values) {
		cmd = append(cmd, f, values[f])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// HSetNX stores value under field only when the field does not exist.
func (c *Client) HSetNX(ctx context.Context, key, field string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"HSETNX", key, field, value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// HVals returns every value of the hash at key.
func (c *Client) HVals(ctx context.Context, key string) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"HVALS", key})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// HRandField returns a random field of the hash at key, or ErrNil on a
// missing key.
func (c *Client) HRandField(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"HRANDFIELD", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// HRandFieldN returns count random fields. A negative count may repeat
// fields.
func (c *Client) HRandFieldN(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"HRANDFIELD", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// HRandFieldWithValues returns count random fields together with their
// values.
func (c *Client) HRandFieldWithValues(ctx context.Context, key string, count int64) (map[string]string, error) {
	res, err := c.run(ctx, protocol.Command{"HRANDFIELD", key, count, "WITHVALUES"})
	if err != nil {
		return nil, err
	}
	return asStringMap(res)
}

// HScan iterates the hash at key one page at a time, returning the fields
// of the page and the cursor for the next call.
func (c *Client) HScan(ctx context.Context, key string, cursor uint64, match string, count int64) (map[string]string, uint64, error) {
	cmd := protocol.Command{"HSCAN", key, cursor}
	if match != "" {
		cmd = append(cmd, "MATCH", match)
	}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, 0, err
	}
	page, ok := res.(format.HScanResult)
	if !ok {
		return nil, 0, replyTypeErr(res, "hash scan page")
	}
	return page.Fields, page.Cursor, nil
}
