package redis

import (
	"context"
	"strings"

	"github.com/upstash/redis-go/internal/protocol"
)

// BitCountRange bounds BitCount to the bytes (or, with Unit "BIT", the
// bits) from Start to End, both inclusive.
type BitCountRange struct {
	Start int64
	End   int64
	Unit  string
}

// BitCount returns the number of set bits in the string at key.
func (c *Client) BitCount(ctx context.Context, key string, rng ...BitCountRange) (int64, error) {
	cmd := protocol.Command{"BITCOUNT", key}
	if len(rng) > 0 {
		r := rng[0]
		cmd = append(cmd, r.Start, r.End)
		if r.Unit != "" {
			u := strings.ToUpper(r.Unit)
			if u != "BYTE" && u != "BIT" {
				return 0, validationErr("BITCOUNT", "unit must be BYTE or BIT, got %q", r.Unit)
			}
			cmd = append(cmd, u)
		}
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// BitOp combines the source keys with the given bitwise operation (AND,
// OR, XOR or NOT) and stores the result in dst. NOT takes exactly one
// source key. Returns the length of the stored string.
func (c *Client) BitOp(ctx context.Context, op, dst string, keys ...string) (int64, error) {
	o := strings.ToUpper(op)
	switch o {
	case "AND", "OR", "XOR":
		if len(keys) == 0 {
			return 0, validationErr("BITOP", "at least one source key is required")
		}
	case "NOT":
		if len(keys) != 1 {
			return 0, validationErr("BITOP", "NOT takes exactly one source key, got %d", len(keys))
		}
	default:
		return 0, validationErr("BITOP", "operation must be AND, OR, XOR or NOT, got %q", op)
	}
	cmd := protocol.Command{"BITOP", o, dst}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// BitPos returns the position of the first bit with the given value (0 or
// 1) in the string at key, optionally bounded to the byte range from start
// to end. Returns -1 when no such bit exists.
func (c *Client) BitPos(ctx context.Context, key string, bit int64, pos ...int64) (int64, error) {
	if bit != 0 && bit != 1 {
		return 0, validationErr("BITPOS", "bit must be 0 or 1, got %d", bit)
	}
	if len(pos) > 2 {
		return 0, validationErr("BITPOS", "at most a start and an end offset may be given")
	}
	cmd := protocol.Command{"BITPOS", key, bit}
	for _, p := range pos {
		cmd = append(cmd, p)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// GetBit returns the bit at offset in the string at key.
func (c *Client) GetBit(ctx context.Context, key string, offset int64) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"GETBIT", key, offset})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// SetBit sets the bit at offset in the string at key to value (0 or 1) and
// returns the previous bit.
func (c *Client) SetBit(ctx context.Context, key string, offset, value int64) (int64, error) {
	if value != 0 && value != 1 {
		return 0, validationErr("SETBIT", "value must be 0 or 1, got %d", value)
	}
	res, err := c.run(ctx, protocol.Command{"SETBIT", key, offset, value})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
