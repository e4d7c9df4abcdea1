// Package redis is a client for the Upstash Redis REST API.
//
// Commands travel as JSON arrays over HTTP POST; results come back in a
// {result | error} envelope, optionally base64-encoded for binary safety.
// The client retries transport failures a bounded number of times, never
// retries server-reported errors, and reshapes raw replies into natural Go
// values (booleans, maps, scored members, scan pages).
//
// A client is built from explicit options or from the environment:
//
//	client, err := redis.New(redis.Options{
//		URL:   "https://tolerant-gecko-12345.upstash.io",
//		Token: "********",
//	})
//
//	client, err := redis.FromEnv()
//
// Every command takes a context and maps one-to-one onto a Redis command.
// Typed methods cover the common surface; Do sends anything:
//
//	val, err := client.Get(ctx, "key")
//	res, err := client.Do(ctx, "SET", "key", "value", "EX", 60)
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// Client talks to one Upstash Redis database. It is safe for concurrent
// use; all configuration happens before first use via Options.
type Client struct {
	opts Options
	exec *protocol.Executor
}

// New creates a client for the database at opts.URL.
func New(opts Options) (*Client, error) {
	opts = opts.withDefaults()
	if err := opts.verify(); err != nil {
		return nil, err
	}

	headers := protocol.BuildHeaders(protocol.HeaderConfig{
		Token:          opts.Token,
		Encoding:       opts.encoding(),
		AllowTelemetry: !opts.DisableTelemetry,
		Telemetry:      opts.Telemetry,
	})

	exec := protocol.NewExecutor(protocol.Config{
		BaseURL:        opts.URL,
		Headers:        headers,
		Client:         opts.HTTPClient,
		Retry:          protocol.RetryPolicy{Retries: opts.Retries, Interval: opts.RetryInterval},
		Encoding:       opts.encoding(),
		Limiter:        opts.Limiter,
		Logger:         opts.Logger,
		ReadYourWrites: !opts.DisableReadYourWrites,
	})

	opts.Logger.Debug("redis client configured",
		"url", opts.URL,
		"token", maskSecret(opts.Token),
		"retries", opts.Retries,
		"retry_interval", opts.RetryInterval,
	)

	return &Client{opts: opts, exec: exec}, nil
}

// FromEnv creates a client from the UPSTASH_REDIS_REST_URL and
// UPSTASH_REDIS_REST_TOKEN environment variables. Additional options may
// be passed; their URL and Token fields are overwritten.
func FromEnv(opts ...Options) (*Client, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	url, ok := lookupEnv(EnvURL)
	if !ok {
		return nil, fmt.Errorf("redis: environment variable %s is not set", EnvURL)
	}
	token, ok := lookupEnv(EnvToken)
	if !ok {
		return nil, fmt.Errorf("redis: environment variable %s is not set", EnvToken)
	}
	o.URL, o.Token = url, token
	return New(o)
}

// RegisterMetrics registers request metrics with Prometheus.
//
// This should be called once during initialization, before the client
// serves commands. Returns the client for method chaining.
func (c *Client) RegisterMetrics(registry *prometheus.Registry) *Client {
	c.exec.RegisterMetrics(registry)
	return c
}

// Do sends an arbitrary command: the command name followed by its
// arguments. String and numeric arguments pass through; any other value is
// serialized to its JSON text. The reply is reshaped the same way the
// typed methods reshape it.
func (c *Client) Do(ctx context.Context, args ...any) (any, error) {
	return c.run(ctx, protocol.Command(args))
}

// run executes one command end to end: serialize, send with retries,
// validate the envelope, decode, reshape.
func (c *Client) run(ctx context.Context, cmd protocol.Command) (any, error) {
	raw, err := c.exec.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return format.Apply(cmd, raw)
}
