package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Script caches a Lua script's digest so repeated runs avoid resending the
// source. Run tries EVALSHA first and falls back to EVAL exactly once when
// the server does not have the script cached, which also reloads it.
//
// A Script is immutable and safe for concurrent use across clients.
type Script struct {
	src  string
	sha1 string
}

// NewScript prepares src for repeated execution.
func NewScript(src string) *Script {
	sum := sha1.Sum([]byte(src))
	return &Script{src: src, sha1: hex.EncodeToString(sum[:])}
}

// Sha1 returns the script's digest.
func (s *Script) Sha1() string {
	return s.sha1
}

// Run executes the script on c with the given key and argument lists.
func (s *Script) Run(ctx context.Context, c *Client, keys []string, args []any) (any, error) {
	res, err := c.EvalSha(ctx, s.sha1, keys, args)
	if err != nil && isNoScript(err) {
		return c.Eval(ctx, s.src, keys, args)
	}
	return res, err
}

// isNoScript matches the server's "script not cached" rejection. Only
// protocol errors qualify; a transport failure must not trigger a resend.
func isNoScript(err error) bool {
	if !IsServerError(err) {
		return false
	}
	return strings.HasPrefix(err.Error(), "NOSCRIPT")
}
