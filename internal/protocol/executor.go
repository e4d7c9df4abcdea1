package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// RetryPolicy bounds transport retries. Retries is the number of additional
// attempts after the first; Interval is the wait between attempts.
type RetryPolicy struct {
	Retries  int
	Interval time.Duration
}

// Config assembles an Executor.
type Config struct {
	// BaseURL is the database REST endpoint, scheme included, no trailing
	// slash.
	BaseURL string

	// Headers are the fixed per-request headers, usually from BuildHeaders.
	Headers http.Header

	// Client is the HTTP client to use. Nil means a default client.
	Client *http.Client

	Retry    RetryPolicy
	Encoding Encoding

	// Limiter, when set, is awaited before every attempt.
	Limiter *rate.Limiter

	// Logger receives request-level debug logs. Nil means slog.Default().
	Logger *slog.Logger

	// ReadYourWrites replays the Upstash-Sync-Token response header on
	// subsequent requests so reads observe earlier writes on replicas.
	ReadYourWrites bool
}

// Executor sends serialized commands to the REST endpoint and turns the
// response envelope into a decoded result. It is safe for concurrent use.
type Executor struct {
	baseURL  string
	headers  http.Header
	client   *http.Client
	retry    RetryPolicy
	encoding Encoding
	limiter  *rate.Limiter
	logger   *slog.Logger

	readYourWrites bool
	mu             sync.Mutex
	syncToken      string

	metrics *executorMetrics
}

// NewExecutor creates an executor from cfg, filling in defaults for the
// HTTP client and logger.
func NewExecutor(cfg Config) *Executor {
	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		headers:        cfg.Headers,
		client:         client,
		retry:          cfg.Retry,
		encoding:       cfg.Encoding,
		limiter:        cfg.Limiter,
		logger:         logger,
		readYourWrites: cfg.ReadYourWrites,
	}
}

// Encoding returns the negotiated response encoding.
func (e *Executor) Encoding() Encoding {
	return e.encoding
}

// Execute serializes one command, posts it, and returns the decoded result
// payload. Transport failures are retried per the policy; server-reported
// envelope errors are returned immediately as *ProtocolError.
func (e *Executor) Execute(ctx context.Context, cmd Command) (any, error) {
	tokens, err := Serialize(cmd)
	if err != nil {
		return nil, err
	}
	raw, err := e.post(ctx, "", Name(cmd), tokens)
	if err != nil {
		return nil, err
	}
	res, err := Envelope(raw)
	if err != nil {
		return nil, err
	}
	return e.decode(res)
}

// ExecutePipeline posts a batch of commands in one request and returns one
// decoded result per command, in order. With transactional set the batch
// runs atomically via the transaction endpoint. The first command that
// reports an envelope error fails the whole call, with the command index
// wrapped around the server message.
func (e *Executor) ExecutePipeline(ctx context.Context, cmds []Command, transactional bool) ([]any, error) {
	batch := make([][]any, len(cmds))
	for i, cmd := range cmds {
		tokens, err := Serialize(cmd)
		if err != nil {
			return nil, fmt.Errorf("pipeline command %d: %w", i, err)
		}
		batch[i] = tokens
	}

	path, name := "/pipeline", "PIPELINE"
	if transactional {
		path, name = "/multi-exec", "MULTI-EXEC"
	}

	raw, err := e.post(ctx, path, name, batch)
	if err != nil {
		return nil, err
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed pipeline response: got %T, want array", raw)}
	}
	if len(arr) != len(cmds) {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed pipeline response: got %d results for %d commands", len(arr), len(cmds))}
	}

	out := make([]any, len(arr))
	for i, el := range arr {
		res, err := Envelope(el)
		if err != nil {
			return nil, fmt.Errorf("pipeline command %d: %w", i, err)
		}
		dec, err := e.decode(res)
		if err != nil {
			return nil, fmt.Errorf("pipeline command %d: %w", i, err)
		}
		out[i] = dec
	}
	return out, nil
}

func (e *Executor) decode(res any) (any, error) {
	if e.encoding != EncodingBase64 {
		return res, nil
	}
	return Decode(res)
}

// post runs the bounded retry loop around one HTTP exchange. Any attempt
// whose body parses as JSON ends the loop; whether that body carries a
// result or a server error is decided by the caller, so protocol errors are
// never retried. Exhausting the policy wraps the last transport error with
// the attempt count.
func (e *Executor) post(ctx context.Context, path, name string, payload any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	id := ulid.Make().String()
	start := time.Now()

	var lastErr error
	attempts := 0
	for {
		attempts++
		raw, err := e.attempt(ctx, path, body)
		if err == nil {
			e.observe(name, "ok", time.Since(start))
			e.logger.Debug("request complete",
				"request_id", id,
				"command", name,
				"attempts", attempts,
				"duration", time.Since(start),
			)
			return raw, nil
		}
		lastErr = err

		if attempts > e.retry.Retries || ctx.Err() != nil {
			break
		}
		e.logger.Warn("request failed, retrying",
			"request_id", id,
			"command", name,
			"attempt", attempts,
			"error", err,
		)
		if e.metrics != nil {
			e.metrics.retries.Inc()
		}
		if err := sleep(ctx, e.retry.Interval); err != nil {
			break
		}
	}

	e.observe(name, "error", time.Since(start))
	e.logger.Debug("request failed",
		"request_id", id,
		"command", name,
		"attempts", attempts,
		"error", lastErr,
	)
	return nil, &TransportError{Attempts: attempts, Err: lastErr}
}

// attempt performs a single HTTP exchange and parses the body. The sync
// token is read under the same lock discipline it is written with, so
// pipelined goroutines always send a token at least as fresh as their last
// completed write.
func (e *Executor) attempt(ctx context.Context, path string, body []byte) (any, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = e.headers.Clone()
	req.Header.Set("Content-Type", "application/json")
	if e.readYourWrites {
		if tok := e.loadSyncToken(); tok != "" {
			req.Header.Set("Upstash-Sync-Token", tok)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := DecodeJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if e.readYourWrites {
		e.storeSyncToken(resp.Header.Get("Upstash-Sync-Token"))
	}
	return raw, nil
}

func (e *Executor) loadSyncToken() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncToken
}

func (e *Executor) storeSyncToken(tok string) {
	if tok == "" {
		return
	}
	e.mu.Lock()
	e.syncToken = tok
	e.mu.Unlock()
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// executorMetrics instruments request outcomes.
type executorMetrics struct {
	requests *prometheus.CounterVec
	retries  prometheus.Counter
	duration prometheus.Histogram
}

// RegisterMetrics registers request metrics with Prometheus.
//
// This should be called once during initialization, before the executor
// serves requests. Returns the executor for method chaining.
func (e *Executor) RegisterMetrics(registry *prometheus.Registry) *Executor {
	m := &executorMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "upstash",
			Subsystem: "redis",
			Name:      "requests_total",
			Help:      "REST requests by command and outcome",
		}, []string{"command", "outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "upstash",
			Subsystem: "redis",
			Name:      "retries_total",
			Help:      "Transport retry attempts",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "upstash",
			Subsystem: "redis",
			Name:      "request_duration_seconds",
			Help:      "End-to-end request duration including retries",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(m.requests, m.retries, m.duration)
	e.metrics = m
	return e
}

func (e *Executor) observe(name, outcome string, d time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.requests.WithLabelValues(name, outcome).Inc()
	e.metrics.duration.Observe(d.Seconds())
}
