package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// XAddOptions modifies XAdd.
type XAddOptions struct {
	// NoMkStream fails instead of creating a missing stream.
	NoMkStream bool

	// MaxLen trims the stream to roughly this many entries after the add.
	// Approx allows the server to round the trim point for efficiency.
	MaxLen int64
	Approx bool
}

// XAdd appends an entry with the given field values to the stream at key
// and returns its ID. An empty id means "*": the server assigns the next
// ID.
func (c *Client) XAdd(ctx context.Context, key, id string, values map[string]any, opts ...XAddOptions) (string, error) {
	if len(values) == 0 {
		return "", validationErr("XADD", "at least one field is required")
	}
	cmd := protocol.Command{"XADD", key}
	if len(opts) > 0 {
		o := opts[0]
		if o.NoMkStream {
			cmd = append(cmd, "NOMKSTREAM")
		}
		if o.MaxLen > 0 {
			cmd = append(cmd, "MAXLEN")
			if o.Approx {
				cmd = append(cmd, "~")
			}
			cmd = append(cmd, o.MaxLen)
		}
	}
	if id == "" {
		id = "*"
	}
	cmd = append(cmd, id)
	for _, f := range sortedKeys(values) {
		cmd = append(cmd, f, values[f])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return asString(res)
}

// XLen returns the number of entries in the stream at key.
func (c *Client) XLen(ctx context.Context, key string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"XLEN", key})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// XRange returns the entries with IDs between start and stop, both
// inclusive. "-" and "+" mark the ends of the stream; a zero count means
// no limit.
func (c *Client) XRange(ctx context.Context, key, start, stop string, count int64) ([]XMessage, error) {
	cmd := protocol.Command{"XRANGE", key, start, stop}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asXMessages(res)
}

// XRevRange is XRange in reverse order; note the swapped bound order.
func (c *Client) XRevRange(ctx context.Context, key, stop, start string, count int64) ([]XMessage, error) {
	cmd := protocol.Command{"XREVRANGE", key, stop, start}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asXMessages(res)
}

// XRead returns new entries from the given streams, starting after the
// paired IDs. "$" reads only entries added from now on. An empty reply
// means nothing arrived; the REST transport does not block.
func (c *Client) XRead(ctx context.Context, streams map[string]string, count int64) ([]XStream, error) {
	if len(streams) == 0 {
		return nil, validationErr("XREAD", "at least one stream is required")
	}
	cmd := protocol.Command{"XREAD"}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	cmd = append(cmd, "STREAMS")
	names := sortedKeys(streams)
	for _, name := range names {
		cmd = append(cmd, name)
	}
	for _, name := range names {
		cmd = append(cmd, streams[name])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asXStreams(res)
}

// XReadGroup is XRead on behalf of a consumer inside a group. The ID ">"
// asks for entries never delivered to any consumer of the group.
func (c *Client) XReadGroup(ctx context.Context, group, consumer string, streams map[string]string, count int64) ([]XStream, error) {
	if len(streams) == 0 {
		return nil, validationErr("XREADGROUP", "at least one stream is required")
	}
	cmd := protocol.Command{"XREADGROUP", "GROUP", group, consumer}
	if count > 0 {
		cmd = append(cmd, "COUNT", count)
	}
	cmd = append(cmd, "STREAMS")
	names := sortedKeys(streams)
	for _, name := range names {
		cmd = append(cmd, name)
	}
	for _, name := range names {
		cmd = append(cmd, streams[name])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asXStreams(res)
}

// XAck acknowledges the given entries for group and returns how many were
// actually pending.
func (c *Client) XAck(ctx context.Context, key, group string, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, validationErr("XACK", "at least one entry ID is required")
	}
	cmd := protocol.Command{"XACK", key, group}
	for _, id := range ids {
		cmd = append(cmd, id)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// XDel removes the given entries from the stream at key and returns how
// many existed.
func (c *Client) XDel(ctx context.Context, key string, ids ...string) (int64, error) {
	if len(ids) == 0 {
		return 0, validationErr("XDEL", "at least one entry ID is required")
	}
	cmd := protocol.Command{"XDEL", key}
	for _, id := range ids {
		cmd = append(cmd, id)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// XTrim cuts the stream at key down to roughly maxLen entries and returns
// how many were removed. Approx allows the server to round the trim point.
func (c *Client) XTrim(ctx context.Context, key string, maxLen int64, approx bool) (int64, error) {
	cmd := protocol.Command{"XTRIM", key, "MAXLEN"}
	if approx {
		cmd = append(cmd, "~")
	}
	cmd = append(cmd, maxLen)
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// XGroupCreate creates a consumer group on the stream at key, delivering
// entries after start ("$" for new entries only, "0" for the whole
// stream). With mkStream a missing stream is created empty.
func (c *Client) XGroupCreate(ctx context.Context, key, group, start string, mkStream bool) error {
	cmd := protocol.Command{"XGROUP", "CREATE", key, group, start}
	if mkStream {
		cmd = append(cmd, "MKSTREAM")
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return err
	}
	return asStatus(res)
}

// XGroupDestroy removes a consumer group. It reports false when the group
// did not exist.
func (c *Client) XGroupDestroy(ctx context.Context, key, group string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"XGROUP", "DESTROY", key, group})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// XGroupCreateConsumer adds a consumer to a group. It reports false when
// the consumer already existed.
func (c *Client) XGroupCreateConsumer(ctx context.Context, key, group, consumer string) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"XGROUP", "CREATECONSUMER", key, group, consumer})
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// XGroupDelConsumer removes a consumer from a group and returns how many
// of its entries were still pending.
func (c *Client) XGroupDelConsumer(ctx context.Context, key, group, consumer string) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"XGROUP", "DELCONSUMER", key, group, consumer})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// XPending summarizes the entries delivered to group's consumers but not
// yet acknowledged.
func (c *Client) XPending(ctx context.Context, key, group string) (XPendingSummary, error) {
	res, err := c.run(ctx, protocol.Command{"XPENDING", key, group})
	if err != nil {
		return XPendingSummary{}, err
	}
	return asXPendingSummary(res)
}
