package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// BitFieldCmd accumulates the subcommands of one BITFIELD invocation.
// Build it with Client.BitField or Client.BitFieldRO, chain operations,
// then Run:
//
//	got, err := client.BitField("bits").
//		Set("u8", 0, 255).
//		Get("u8", 0).
//		Run(ctx)
//
// Encodings follow the Redis syntax: a sign marker (i or u) followed by
// the width in bits, e.g. "i64", "u8".
type BitFieldCmd struct {
	client *Client
	cmd    protocol.Command
}

// BitField starts a read-write BITFIELD command on key.
func (c *Client) BitField(key string) *BitFieldCmd {
	return &BitFieldCmd{client: c, cmd: protocol.Command{"BITFIELD", key}}
}

// BitFieldRO starts a read-only BITFIELD_RO command on key. Only Get
// operations are valid on it; the server rejects anything else.
func (c *Client) BitFieldRO(key string) *BitFieldCmd {
	return &BitFieldCmd{client: c, cmd: protocol.Command{"BITFIELD_RO", key}}
}

// Get queues a read of the field of the given encoding at offset.
func (b *BitFieldCmd) Get(encoding string, offset int64) *BitFieldCmd {
	b.cmd = append(b.cmd, "GET", encoding, offset)
	return b
}

// Set queues a write of value to the field at offset and reports the old
// value.
func (b *BitFieldCmd) Set(encoding string, offset, value int64) *BitFieldCmd {
	b.cmd = append(b.cmd, "SET", encoding, offset, value)
	return b
}

// IncrBy queues an increment of the field at offset and reports the new
// value.
func (b *BitFieldCmd) IncrBy(encoding string, offset, increment int64) *BitFieldCmd {
	b.cmd = append(b.cmd, "INCRBY", encoding, offset, increment)
	return b
}

// Overflow sets the overflow behavior (WRAP, SAT or FAIL) for the
// following IncrBy and Set operations.
func (b *BitFieldCmd) Overflow(mode string) *BitFieldCmd {
	b.cmd = append(b.cmd, "OVERFLOW", mode)
	return b
}

// Run sends the accumulated subcommands and returns one result per
// operation, in order. A nil entry marks an operation that failed under
// OVERFLOW FAIL.
func (b *BitFieldCmd) Run(ctx context.Context) ([]*int64, error) {
	if len(b.cmd) <= 2 {
		return nil, validationErr("BITFIELD", "at least one operation is required")
	}
	res, err := b.client.run(ctx, b.cmd)
	if err != nil {
		return nil, err
	}
	return asOptionalIntSlice(res)
}
