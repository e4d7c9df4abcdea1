package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// Ping checks the connection. Without a message it returns "PONG"; with
// one, the message echoed back.
func (c *Client) Ping(ctx context.Context, message ...string) (string, error) {
	cmd := protocol.Command{"PING"}
	if len(message) > 0 {
		cmd = append(cmd, message[0])
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return "", err
	}
	return asString(res)
}

// Echo returns message unchanged.
func (c *Client) Echo(ctx context.Context, message string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"ECHO", message})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// DBSize returns the number of keys in the database.
func (c *Client) DBSize(ctx context.Context) (int64, error) {
	res, err := c.run(ctx, protocol.Command{"DBSIZE"})
	if err != nil {
		return 0, err
	}
	return asInt(res)
}

// FlushAll removes every key from every database. With async the server
// reclaims memory in the background.
func (c *Client) FlushAll(ctx context.Context, async ...bool) (bool, error) {
	cmd := protocol.Command{"FLUSHALL"}
	if len(async) > 0 && async[0] {
		cmd = append(cmd, "ASYNC")
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// FlushDB removes every key from the current database.
func (c *Client) FlushDB(ctx context.Context, async ...bool) (bool, error) {
	cmd := protocol.Command{"FLUSHDB"}
	if len(async) > 0 && async[0] {
		cmd = append(cmd, "ASYNC")
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return false, err
	}
	return asBool(res)
}

// Time returns the server clock.
func (c *Client) Time(ctx context.Context) (TimeResult, error) {
	res, err := c.run(ctx, protocol.Command{"TIME"})
	if err != nil {
		return TimeResult{}, err
	}
	clock, ok := res.(TimeResult)
	if !ok {
		return TimeResult{}, replyTypeErr(res, "server clock")
	}
	return clock, nil
}
