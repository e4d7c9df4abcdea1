package redis

import (
	"context"
	"strings"

	"github.com/upstash/redis-go/internal/protocol"
)

// LIndex returns the element at index in the list at key, or ErrNil when
// the index is out of range. Negative indexes count from the tail.
func (c *Client) LIndex(ctx context.Context, key string, index int64) (string, error) {
	res, err := c.run(ctx, protocol.Command{"LINDEX", key, index})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// LInsert inserts element before or after pivot in the list at key and
// returns the new length, -1 when pivot was not found, or 0 on a missing
// key. where must be "BEFORE" or "AFTER".
func (c *Client) LInsert(ctx context.Context, key, where string, pivot, element any) (int64, error) {
	w := strings.ToUpper(where)
	if w != "BEFORE" && w != "AFTER" {
		return 0, validationErr("LINSERT", "where must be BEFORE or AFTER, got %q", where)
	}
	res, err := c.run(ctx, protocol.Command{"LINSERT", key, w, pivot, element})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LLen returns the length of the list at key.
func (c *Client) LLen(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"LLEN", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LMove atomically pops one element from src and pushes it onto dst.
// srcSide and dstSide are each "LEFT" or "RIGHT". Returns the moved
// element, or ErrNil when src is empty.
func (c *Client) LMove(ctx context.Context, src, dst, srcSide, dstSide string) (string, error) {
	from, to := strings.ToUpper(srcSide), strings.ToUpper(dstSide)
	for _, side := range []string{from, to} {
		if side != "LEFT" && side != "RIGHT" {
			return "", validationErr("LMOVE", "side must be LEFT or RIGHT, got %q", side)
		}
	}
	res, err := c.run(ctx, protocol.Command{"LMOVE", src, dst, from, to})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// LPop removes and returns the first element of the list at key, or ErrNil
// when the list is empty.
func (c *Client) LPop(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"LPOP", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// LPopCount removes and returns up to count elements from the head of the
// list at key.
func (c *Client) LPopCount(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"LPOP", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// LPosOptions modifies LPos. Rank selects which match to report (negative
// ranks search from the tail); MaxLen bounds the comparisons made.
type LPosOptions struct {
	Rank   int64
	MaxLen int64
}

func (o *LPosOptions) appendTo(cmd protocol.Command) protocol.Command {
	if o.Rank != 0 {
		cmd = append(cmd, "RANK", o.Rank)
	}
	if o.MaxLen != 0 {
		cmd = append(cmd, "MAXLEN", o.MaxLen)
	}
	return cmd
}

// LPos returns the index of the first match of element in the list at key,
// or ErrNil when there is none.
func (c *Client) LPos(ctx context.Context, key string, element any, opts ...LPosOptions) (int64, error) {
	cmd := protocol.Command{"LPOS", key, element}
	if len(opts) > 0 {
		cmd = opts[0].appendTo(cmd)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LPosCount returns the indexes of up to count matches of element. A zero
// count returns every match.
func (c *Client) LPosCount(ctx context.Context, key string, element any, count int64, opts ...LPosOptions) ([]int64, error) {
	cmd := protocol.Command{"LPOS", key, element}
	if len(opts) > 0 {
		cmd = opts[0].appendTo(cmd)
	}
	cmd = append(cmd, "COUNT", count)
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	items, err := asAnySlice(res)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(items))
	for i, el := range items {
		n, ok := el.(int64)
		if !ok {
			return nil, replyTypeErr(el, "integer")
		}
		out[i] = n
	}
	return out, nil
}

// LPush prepends the given elements to the list at key and returns the new
// length.
func (c *Client) LPush(ctx context.Context, key string, elements ...any) (int64, error) {
	if len(elements) == 0 {
		return 0, validationErr("LPUSH", "at least one element is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"LPUSH", key}, elements...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LPushX is LPush restricted to keys that already hold a list.
func (c *Client) LPushX(ctx context.Context, key string, elements ...any) (int64, error) {
	if len(elements) == 0 {
		return 0, validationErr("LPUSHX", "at least one element is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"LPUSHX", key}, elements...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LRange returns the elements from start to stop, both inclusive. Negative
// offsets count from the tail.
func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"LRANGE", key, start, stop})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// LRem removes up to count occurrences of element from the list at key and
// returns how many were removed. A negative count removes from the tail, a
// zero count removes all occurrences.
func (c *Client) LRem(ctx context.Context, key string, count int64, element any) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"LREM", key, count, element})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// LSet overwrites the element at index in the list at key.
func (c *Client) LSet(ctx context.Context, key string, index int64, element any) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"LSET", key, index, element})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// LTrim cuts the list at key down to the elements from start to stop, both
// inclusive.
func (c *Client) LTrim(ctx context.Context, key string, start, stop int64) error {
	res, err := c.run(ctx, protocol.Command{"LTRIM", key, start, stop})
	if err != nil {
		return err
	}
	return asStatus(res)
}

// RPop removes and returns the last element of the list at key, or ErrNil
// when the list is empty.
func (c *Client) RPop(ctx context.Context, key string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"RPOP", key})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// RPopCount removes and returns up to count elements from the tail of the
// list at key.
func (c *Client) RPopCount(ctx context.Context, key string, count int64) ([]string, error) {
	res, err := c.run(ctx, protocol.Command{"RPOP", key, count})
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// RPopLPush pops the last element of src and prepends it to dst. Returns
// the moved element, or ErrNil when src is empty.
func (c *Client) RPopLPush(ctx context.Context, src, dst string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"RPOPLPUSH", src, dst})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// RPush appends the given elements to the list at key and returns the new
// length.
func (c *Client) RPush(ctx context.Context, key string, elements ...any) (int64, error) {
	if len(elements) == 0 {
		return 0, validationErr("RPUSH", "at least one element is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"RPUSH", key}, elements...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// RPushX is RPush restricted to keys that already hold a list.
func (c *Client) RPushX(ctx context.Context, key string, elements ...any) (int64, error) {
	if len(elements) == 0 {
		return 0, validationErr("RPUSHX", "at least one element is required")
	}
	res, err := c.run(ctx, append(protocol.Command{"RPUSHX", key}, elements...))
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
