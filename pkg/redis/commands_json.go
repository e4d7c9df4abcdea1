package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// JSON document commands. Paths use the JSONPath syntax; "$" addresses the
// document root. Most path commands reply with one entry per path match,
// with nil marking matches the operation did not apply to.

// JSONSet stores value at path inside the document at key. The value is
// serialized to JSON client-side, so any JSON-marshalable Go value works.
func (c *Client) JSONSet(ctx context.Context, key, path string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.SET", key, path, value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// JSONSetNX is JSONSet writing only when path does not exist yet.
func (c *Client) JSONSetNX(ctx context.Context, key, path string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.SET", key, path, value, "NX"})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// JSONSetXX is JSONSet writing only when path already exists.
func (c *Client) JSONSetXX(ctx context.Context, key, path string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.SET", key, path, value, "XX"})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// JSONGet returns the values at the given paths, parsed back into generic
// Go values. Without paths the whole document is returned. A missing key
// yields ErrNil.
func (c *Client) JSONGet(ctx context.Context, key string, paths ...string) (any, error) {
	cmd := protocol.Command{"JSON.GET", key}
	for _, p := range paths {
		cmd = append(cmd, p)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrNil
	}
	return res, nil
}

// JSONMGet returns the value at path from every given key, in order; a nil
// entry means the key is missing.
func (c *Client) JSONMGet(ctx context.Context, path string, keys ...string) ([]any, error) {
	if len(keys) == 0 {
		return nil, validationErr("JSON.MGET", "at least one key is required")
	}
	cmd := protocol.Command{"JSON.MGET"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	cmd = append(cmd, path)
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asAnySlice(res)
}

// JSONMerge merges value into the document at path, RFC 7386 style: nulls
// delete, objects merge recursively, everything else replaces.
func (c *Client) JSONMerge(ctx context.Context, key, path string, value any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.MERGE", key, path, value})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// JSONDel removes the values at path and returns how many were removed.
func (c *Client) JSONDel(ctx context.Context, key, path string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.DEL", key, path})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// JSONClear empties the containers at path (arrays to [], objects to {},
// numbers to 0) and returns how many values were cleared.
func (c *Client) JSONClear(ctx context.Context, key, path string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.CLEAR", key, path})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// JSONType returns the JSON type name of every value at path.
func (c *Client) JSONType(ctx context.Context, key, path string) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.TYPE", key, path})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// JSONNumIncrBy increments the numbers at path by value and returns the
// new values, with nil for matches that are not numbers.
func (c *Client) JSONNumIncrBy(ctx context.Context, key, path string, value float64) (any, error) {
	return c.run(ctx, protocol.Command{"JSON.NUMINCRBY", key, path, value})
}

// JSONNumMultBy multiplies the numbers at path by value and returns the
// new values, with nil for matches that are not numbers.
func (c *Client) JSONNumMultBy(ctx context.Context, key, path string, value float64) (any, error) {
	return c.run(ctx, protocol.Command{"JSON.NUMMULTBY", key, path, value})
}

// JSONToggle flips the booleans at path and returns the new values, with
// nil for matches that are not booleans.
func (c *Client) JSONToggle(ctx context.Context, key, path string) ([]*bool, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.TOGGLE", key, path})
	if err != nil {
		return nil, err
	}
	flags, ok := res.([]*bool)
	if !ok {
		return nil, replyTypeErr(res, "optional bool array")
	}
	return flags, nil
}

// JSONStrAppend appends the JSON string value to the strings at path and
// returns their new lengths, with nil for matches that are not strings.
func (c *Client) JSONStrAppend(ctx context.Context, key, path, value string) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.STRAPPEND", key, path, value})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONStrLen returns the lengths of the strings at path, with nil for
// matches that are not strings.
func (c *Client) JSONStrLen(ctx context.Context, key, path string) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.STRLEN", key, path})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONArrAppend appends the given values to the arrays at path and returns
// their new lengths, with nil for matches that are not arrays.
func (c *Client) JSONArrAppend(ctx context.Context, key, path string, values ...any) ([]*int64, error) {
	if len(values) == 0 {
		return nil, validationErr("JSON.ARRAPPEND", "at least one value is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"JSON.ARRAPPEND", key, path}, values...))
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONArrIndex returns the index of value inside the arrays at path, -1
// when absent, nil for matches that are not arrays.
func (c *Client) JSONArrIndex(ctx context.Context, key, path string, value any) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.ARRINDEX", key, path, value})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONArrInsert inserts the given values into the arrays at path before
// index and returns the new lengths, with nil for matches that are not
// arrays.
func (c *Client) JSONArrInsert(ctx context.Context, key, path string, index int64, values ...any) ([]*int64, error) {
	if len(values) == 0 {
		return nil, validationErr("JSON.ARRINSERT", "at least one value is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"JSON.ARRINSERT", key, path, index}, values...))
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONArrLen returns the lengths of the arrays at path, with nil for
// matches that are not arrays.
func (c *Client) JSONArrLen(ctx context.Context, key, path string) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.ARRLEN", key, path})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONArrPop removes and returns the element at index from the arrays at
// path, parsed back into generic Go values; nil marks matches that are not
// arrays or are empty. Index -1 pops the last element.
func (c *Client) JSONArrPop(ctx context.Context, key, path string, index int64) ([]any, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.ARRPOP", key, path, index})
	if err != nil {
		return nil, err
	}
	return asAnySlice(res)
}

// JSONArrTrim cuts the arrays at path down to the elements from start to
// stop, both inclusive, and returns the new lengths.
func (c *Client) JSONArrTrim(ctx context.Context, key, path string, start, stop int64) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.ARRTRIM", key, path, start, stop})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}

// JSONObjKeys returns the key names of the objects at path, with nil for
// matches that are not objects.
func (c *Client) JSONObjKeys(ctx context.Context, key, path string) ([][]string, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.OBJKEYS", key, path})
	if err != nil {
		return nil, err
	}
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(items))
	for i, el := range items {
		if el == nil {
			continue
		}
		names, err := asStringSlice(el)
		if err != nil {
			return nil, err
		}
		out[i] = names
	}
	return out, nil
}

// JSONObjLen returns the sizes of the objects at path, with nil for
// matches that are not objects.
func (c *Client) JSONObjLen(ctx context.Context, key, path string) ([]*int64, error) {
	res, err := c.run(ctx, protocol.Command{"JSON.OBJLEN", key, path})
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}
