package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(url string, cfg Config) *Executor {
	cfg.BaseURL = url
	if cfg.Headers == nil {
		cfg.Headers = BuildHeaders(HeaderConfig{Token: "test-token", Encoding: cfg.Encoding, LookupEnv: noEnv})
	}
	if cfg.Logger == nil {
		cfg.Logger = testLogger()
	}
	return NewExecutor(cfg)
}

func TestExecutor_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check method and headers
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want %q", got, "application/json")
		}
		if got := r.Header.Get("Upstash-Encoding"); got != "base64" {
			t.Errorf("Upstash-Encoding = %q, want %q", got, "base64")
		}

		// Check the serialized command array
		var tokens []any
		if err := json.NewDecoder(r.Body).Decode(&tokens); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		want := []any{"GET", "key"}
		if !reflect.DeepEqual(tokens, want) {
			t.Errorf("body = %v, want %v", tokens, want)
		}

		w.Write([]byte(`{"result":"dmFsdWU="}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{Encoding: EncodingBase64})
	got, err := exec.Execute(context.Background(), Command{"GET", "key"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "value" {
		t.Errorf("result = %v, want %q", got, "value")
	}
}

func TestExecutor_ExecutePlainEncoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Upstash-Encoding"); got != "" {
			t.Errorf("Upstash-Encoding = %q, want empty", got)
		}
		w.Write([]byte(`{"result":"plain value"}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{Encoding: EncodingNone})
	got, err := exec.Execute(context.Background(), Command{"GET", "key"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "plain value" {
		t.Errorf("result = %v, want %q", got, "plain value")
	}
}

func TestExecutor_RetryBound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{
		Retry: RetryPolicy{Retries: 2, Interval: 0},
	})
	_, err := exec.Execute(context.Background(), Command{"PING"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Retries bound total attempts to retries+1.
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if te.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", te.Attempts)
	}
	if !strings.Contains(err.Error(), "status 502") {
		t.Errorf("error = %q, want to mention status 502", err.Error())
	}
}

func TestExecutor_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"WRONGPASS invalid or missing auth token"}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{
		Retry: RetryPolicy{Retries: 5, Interval: time.Hour},
	})
	_, err := exec.Execute(context.Background(), Command{"PING"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// A parsed envelope error is never retried.
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}

	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %T, want *ProtocolError", err)
	}
	if pe.Message != "WRONGPASS invalid or missing auth token" {
		t.Errorf("Message = %q, want server message verbatim", pe.Message)
	}
}

func TestExecutor_RetryThenSuccess(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("temporarily unavailable"))
			return
		}
		w.Write([]byte(`{"result":"UE9ORw=="}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{
		Encoding: EncodingBase64,
		Retry:    RetryPolicy{Retries: 1, Interval: time.Millisecond},
	})
	got, err := exec.Execute(context.Background(), Command{"PING"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "PONG" {
		t.Errorf("result = %v, want %q", got, "PONG")
	}
	if calls.Load() != 2 {
		t.Errorf("attempts = %d, want 2", calls.Load())
	}
}

func TestExecutor_ContextCanceledDuringWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("nope"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	exec := newTestExecutor(server.URL, Config{
		Retry: RetryPolicy{Retries: 10, Interval: time.Hour},
	})

	start := time.Now()
	_, err := exec.Execute(ctx, Command{"PING"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation took %v, want prompt return", elapsed)
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if te.Attempts >= 11 {
		t.Errorf("Attempts = %d, want the wait to abort the loop", te.Attempts)
	}
}

func TestExecutor_SyncTokenReplay(t *testing.T) {
	var calls atomic.Int32
	var seenTokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		seenTokens = append(seenTokens, r.Header.Get("Upstash-Sync-Token"))
		w.Header().Set("Upstash-Sync-Token", "sync-"+string(rune('0'+n)))
		w.Write([]byte(`{"result":1}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{ReadYourWrites: true})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := exec.Execute(ctx, Command{"INCR", "counter"}); err != nil {
			t.Fatalf("Execute %d failed: %v", i, err)
		}
	}

	want := []string{"", "sync-1", "sync-2"}
	if !reflect.DeepEqual(seenTokens, want) {
		t.Errorf("sync tokens = %v, want %v", seenTokens, want)
	}
}

func TestExecutor_SyncTokenDisabled(t *testing.T) {
	var seenTokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTokens = append(seenTokens, r.Header.Get("Upstash-Sync-Token"))
		w.Header().Set("Upstash-Sync-Token", "sync-token")
		w.Write([]byte(`{"result":1}`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{ReadYourWrites: false})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := exec.Execute(ctx, Command{"INCR", "counter"}); err != nil {
			t.Fatalf("Execute %d failed: %v", i, err)
		}
	}

	want := []string{"", ""}
	if !reflect.DeepEqual(seenTokens, want) {
		t.Errorf("sync tokens = %v, want %v", seenTokens, want)
	}
}

func TestExecutor_Pipeline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pipeline" {
			t.Errorf("path = %q, want /pipeline", r.URL.Path)
		}

		var batch [][]any
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if len(batch) != 2 {
			t.Errorf("batch size = %d, want 2", len(batch))
		}

		w.Write([]byte(`[{"result":"OK"},{"result":"dmFsdWU="}]`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{Encoding: EncodingBase64})
	got, err := exec.ExecutePipeline(context.Background(), []Command{
		{"SET", "key", "value"},
		{"GET", "key"},
	}, false)
	if err != nil {
		t.Fatalf("ExecutePipeline failed: %v", err)
	}

	want := []any{"OK", "value"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("results = %v, want %v", got, want)
	}
}

func TestExecutor_TransactionPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/multi-exec" {
			t.Errorf("path = %q, want /multi-exec", r.URL.Path)
		}
		w.Write([]byte(`[{"result":1}]`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{})
	got, err := exec.ExecutePipeline(context.Background(), []Command{{"INCR", "n"}}, true)
	if err != nil {
		t.Fatalf("ExecutePipeline failed: %v", err)
	}
	if !reflect.DeepEqual(got, []any{int64(1)}) {
		t.Errorf("results = %v, want [1]", got)
	}
}

func TestExecutor_PipelineCommandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"result":1},{"error":"ERR value is not an integer"}]`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{})
	_, err := exec.ExecutePipeline(context.Background(), []Command{
		{"INCR", "a"},
		{"INCR", "b"},
	}, false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// The failing command's index is part of the error.
	if !strings.Contains(err.Error(), "pipeline command 1") {
		t.Errorf("error = %q, want to name command 1", err.Error())
	}
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Errorf("error = %T, want to wrap *ProtocolError", err)
	}
}

func TestExecutor_PipelineLengthMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"result":1}]`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL, Config{})
	_, err := exec.ExecutePipeline(context.Background(), []Command{
		{"INCR", "a"},
		{"INCR", "b"},
	}, false)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Errorf("error = %T, want *ProtocolError", err)
	}
}

func TestExecutor_LimiterRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null}`))
	}))
	defer server.Close()

	// Zero burst can never admit a request; the limiter error surfaces as a
	// transport failure without touching the network.
	exec := newTestExecutor(server.URL, Config{
		Limiter: rate.NewLimiter(1, 0),
	})
	_, err := exec.Execute(context.Background(), Command{"PING"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Errorf("error = %T, want *TransportError", err)
	}
}

func TestExecutor_TrailingSlashTrimmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pipeline" {
			t.Errorf("path = %q, want /pipeline", r.URL.Path)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	exec := newTestExecutor(server.URL+"/", Config{})
	if _, err := exec.ExecutePipeline(context.Background(), nil, false); err != nil {
		t.Fatalf("ExecutePipeline failed: %v", err)
	}
}
