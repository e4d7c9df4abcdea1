package redis

import (
	"context"

	"github.com/upstash/redis-go/internal/protocol"
)

// Eval runs a Lua script on the server with the given key and argument
// lists. The reply shape depends entirely on the script.
func (c *Client) Eval(ctx context.Context, script string, keys []string, args []any) (any, error) {
	return c.run(ctx, evalCommand("EVAL", script, keys, args))
}

// EvalSha is Eval addressing a previously loaded script by its SHA-1
// digest. The server rejects unknown digests with a NOSCRIPT error.
func (c *Client) EvalSha(ctx context.Context, sha1 string, keys []string, args []any) (any, error) {
	return c.run(ctx, evalCommand("EVALSHA", sha1, keys, args))
}

func evalCommand(name, script string, keys []string, args []any) protocol.Command {
	cmd := protocol.Command{name, script, len(keys)}
	for _, k := range keys {
		cmd = append(cmd, k)
	}
	return append(cmd, args...)
}

// ScriptLoad stores a Lua script in the server's script cache and returns
// its SHA-1 digest.
func (c *Client) ScriptLoad(ctx context.Context, script string) (string, error) {
	res, err := c.run(ctx, protocol.Command{"SCRIPT", "LOAD", script})
	if err != nil {
		return "", err
	}
	return asString(res)
}

// ScriptExists reports, for each given digest, whether the server has the
// script cached.
func (c *Client) ScriptExists(ctx context.Context, sha1s ...string) ([]bool, error) {
	if len(sha1s) == 0 {
		return nil, validationErr("SCRIPT EXISTS", "at least one digest is required")
	}
	cmd := protocol.Command{"SCRIPT", "EXISTS"}
	for _, s := range sha1s {
		cmd = append(cmd, s)
	}
	res, err := c.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return asBoolSlice(res)
}

// ScriptFlush empties the server's script cache.
func (c *Client) ScriptFlush(ctx context.Context) (bool, error) {
	res, err := c.run(ctx, protocol.Command{"SCRIPT", "FLUSH"})
	if err != nil {
		return false, err
	}
	return asBool(res)
}
