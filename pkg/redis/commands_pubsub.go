package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// Publish sends message to channel and returns how many subscribers
// received it.
func (c *Client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"PUBLISH", channel, message})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// PubSubChannels returns the active channels, optionally filtered by a
// glob pattern.
func (c *Client) PubSubChannels(ctx context.Context, pattern string) ([]string, error) {
	cmd := protocol.Command{"PUBSUB", "CHANNELS"}
	if pattern != "" {
		cmd = append(cmd, pattern)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asStringSlice(res)
}

// PubSubNumSub returns the subscriber count of every given channel.
func (c *Client) PubSubNumSub(ctx context.Context, channels ...string) (map[string]int64, error) {
	cmd := protocol.Command{"PUBSUB", "NUMSUB"}
	for _, ch := range channels {
		cmd = append(cmd, ch)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asIntMap(res)
}

// PubSubNumPat returns the number of unique patterns subscribed to.
func (c *Client) PubSubNumPat(ctx context.Context) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"PUBSUB", "NUMPAT"})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}
