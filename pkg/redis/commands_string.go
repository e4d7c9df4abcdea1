package redis

import (
	"context"
	"time"

	"github.com/upstash/redis-go/internal/protocol"
)

// SetOptions modifies Set. At most one of the expiry fields may be used,
// and NX and XX exclude each other.
type SetOptions struct {
	// NX sets the key only if it does not exist; XX only if it does.
	NX bool
	XX bool

	// EX and PX expire the key after a relative duration; EXAt and PXAt
	// at an absolute time. KeepTTL retains the key's current expiry.
	EX      time.Duration
	PX      time.Duration
	EXAt    time.Time
	PXAt    time.Time
	KeepTTL bool
}

func (o *SetOptions) appendTo(cmd protocol.Command) (protocol.Command, error) {
	if o.NX && o.XX {
		return nil, validationErr("SET", "NX and XX are mutually exclusive")
	}
	expirySelectors := 0
	if o.EX != 0 {
		expirySelectors++
	}
	if o.PX != 0 {
		expirySelectors++
	}
	if !o.EXAt.IsZero() {
		expirySelectors++
	}
	if !o.PXAt.IsZero() {
		expirySelectors++
	}
	if o.KeepTTL {
		expirySelectors++
	}
	if expirySelectors > 1 {
		return nil, validationErr("SET", "EX, PX, EXAT, PXAT and KEEPTTL are mutually exclusive")
	}

	if o.NX {
		cmd = append(cmd, "NX")
	}
	if o.XX {
		cmd = append(cmd, "XX")
	}
	switch {
	case o.EX != 0:
		cmd = append(cmd, "EX", seconds(o.EX))
	case o.PX != 0:
		cmd = append(cmd, "PX", millis(o.PX))
	case !o.EXAt.IsZero():
		cmd = append(cmd, "EXAT", o.EXAt.Unix())
	case !o.PXAt.IsZero():
		cmd = append(cmd, "PXAT", o.PXAt.UnixMilli())
	case o.KeepTTL:
		cmd = append(cmd, "KEEPTTL")
	}
	return cmd, nil
}

// Set stores value under key. It reports true when the value was set and
// false when a NX or XX condition blocked the write.
func (c *Client) Set(ctx context.Context, key string, value any, opts ...SetOptions) (bool, error) {
	cmd := protocol.Command{"SET", key, value}
	if len(opts) > 0 {
		var err error
		cmd, err = opts[0].appendTo(cmd)
		if err != nil {
			return false, err
		}
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// Get returns the value of key, or ErrNil when the key does not exist.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"GET", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// GetDel returns the value of key and deletes the key.
func (c *Client) GetDel(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"GETDEL", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// GetExOptions modifies GetEx. At most one field may be used.
type GetExOptions struct {
	EX      time.Duration
	PX      time.Duration
	EXAt    time.Time
	PXAt    time.Time
	Persist bool
}

func (o *GetExOptions) appendTo(cmd protocol.Command) (protocol.Command, error) {
	selectors := 0
	if o.EX != 0 {
		selectors++
	}
	if o.PX != 0 {
		selectors++
	}
	if !o.EXAt.IsZero() {
		selectors++
	}
	if !o.PXAt.IsZero() {
		selectors++
	}
	if o.Persist {
		selectors++
	}
	if selectors > 1 {
		return nil, validationErr("GETEX", "EX, PX, EXAT, PXAT and PERSIST are mutually exclusive")
	}
	switch {
	case o.EX != 0:
		cmd = append(cmd, "EX", seconds(o.EX))
	case o.PX != 0:
		cmd = append(cmd, "PX", millis(o.PX))
	case !o.EXAt.IsZero():
		cmd = append(cmd, "EXAT", o.EXAt.Unix())
	case !o.PXAt.IsZero():
		cmd = append(cmd, "PXAT", o.PXAt.UnixMilli())
	case o.Persist:
		cmd = append(cmd, "PERSIST")
	}
	return cmd, nil
}

// GetEx returns the value of key and optionally adjusts its expiry.
func (c *Client) GetEx(ctx context.Context, key string, opts ...GetExOptions) (string, error) {
	cmd := protocol.Command{"GETEX", key}
	if len(opts) > 0 {
		var err error
		cmd, err = opts[0].appendTo(cmd)
		if err != nil {
			return "", err
		}
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return asString(res)
}

// GetRange returns the substring of the value from start to end, both
// inclusive. Negative offsets count from the end.
func (c *Client) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	res, err := c.run(ctx, protocol.Command{"GETRANGE", key, start, end})
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return asString(res)
}

// GetSet stores value under key and returns the previous value.
func (c *Client) GetSet(ctx context.Context, key string, value any) (string, error) {
	res, err := c.run(ctx, protocol.Command{"GETSET", key, value})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// Append appends value to the string at key and returns the new length.
func (c *Client) Append(ctx context.Context, key, value string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"APPEND", key, value})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Incr increments the integer at key by one.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"INCR", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// IncrBy increments the integer at key by increment.
func (c *Client) IncrBy(ctx context.Context, key string, increment int64) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"INCRBY", key, increment})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// IncrByFloat increments the number at key by increment.
func (c *Client) IncrByFloat(ctx context.Context, key string, increment float64) (float64, error) {
	res, err := c.run(ctx, protocol.Command{"INCRBYFLOAT", key, increment})
	if err != nil {
		return 0, err
	}
	return asFloat(res)
}

// Decr decrements the integer at key by one.
func (c *Client) Decr(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"DECR", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// DecrBy decrements the integer at key by decrement.
func (c *Client) DecrBy(ctx context.Context, key string, decrement int64) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"DECRBY", key, decrement})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// MGet returns the values of all keys in order; a nil entry means the key
// does not exist.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]*string, error) {
	cmd := protocol.Command{"MGET"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asOptionalStringSlice(res)
}

// MSet stores every key-value pair of values atomically.
func (c *Client) MSet(ctx context.Context, values map[string]any) (bool, error) {
	cmd := protocol.Command{"MSET"}
	for _, k := range sortedKeys(values) {
		cmd = append(cmd, k, values[k])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// MSetNX stores every pair only if none of the keys exist.
func (c *Client) MSetNX(ctx context.Context, values map[string]any) (bool, error) {
	cmd := protocol.Command{"MSETNX"}
	for _, k := range sortedKeys(values) {
		cmd = append(cmd, k, values[k])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// SetEx stores value under key with a relative expiry.
func (c *Client) SetEx(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"SETEX", key, seconds(ttl), value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// PSetEx is SetEx with millisecond expiry resolution.
func (c *Client) PSetEx(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"PSETEX", key, millis(ttl), value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// SetNX stores value only if key does not exist.
func (c *Client) SetNX(ctx context.Context, key string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"SETNX", key, value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// SetRange overwrites the value at key starting at offset and returns the
// new length.
func (c *Client) SetRange(ctx context.Context, key string, offset int64, value string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"SETRANGE", key, offset, value})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// StrLen returns the length of the string at key.
func (c *Client) StrLen(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"STRLEN", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// Substr returns the substring of the value from start to end, both
// inclusive.
func (c *Client) Substr(ctx context.Context, key string, start, end int64) (string, error) {
	res, err := c.run(ctx, protocol.Command{"SUBSTR", key, start, end})
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return asString(res)
}
