package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// PFAdd adds the given elements to the HyperLogLog at key. It reports true
// when the estimated cardinality changed.
func (c *Client) PFAdd(ctx context.Context, key string, elements ...any) (bool, error) {
	res, err := c.run(ctx, append(protocol.Command{"PFADD", key}, elements...))
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// PFCount returns the estimated cardinality of the union of the given
// HyperLogLogs.
func (c *Client) PFCount(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, validationErr("PFCOUNT", "at least one key is required")
	}
	cmd := protocol.Command{"PFCOUNT"}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// PFMerge merges the given HyperLogLogs into dst.
func (c *Client) PFMerge(ctx context.Context, dst string, keys ...string) (bool, error) {
	cmd := protocol.Command{"PFMERGE", dst}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}
