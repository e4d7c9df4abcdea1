package command

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/upstash/redis-go/internal/cli/config"
)

func TestApp_Commands(t *testing.T) {
	app := App()

	want := []string{"run", "repl", "config", "ping", "version"}
	for _, name := range want {
		if app.Command(name) == nil {
			t.Errorf("App() missing command %q", name)
		}
	}
}

func TestPromptFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://tolerant-gecko-12345.upstash.io", "tolerant-gecko-12345.upstash.io> "},
		{"http://localhost:8080", "localhost:8080> "},
		{"", "redis> "},
		{"not a url", "redis> "},
	}

	for _, tt := range tests {
		if got := promptFromURL(tt.url); got != tt.want {
			t.Errorf("promptFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestConfigSet_And_Show(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	app := App()

	if err := app.Run([]string{"upstash-redis-cli", "--config", path,
		"config", "set", "rest.url", "https://example-db.upstash.io"}); err != nil {
		t.Fatalf("config set rest.url error = %v", err)
	}
	if err := app.Run([]string{"upstash-redis-cli", "--config", path,
		"config", "set", "codec", "gzip"}); err != nil {
		t.Fatalf("config set codec error = %v", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Rest.URL != "https://example-db.upstash.io" {
		t.Errorf("URL = %q", cfg.Rest.URL)
	}
	if cfg.Codec != "gzip" {
		t.Errorf("Codec = %q", cfg.Codec)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	app := App()

	tests := [][]string{
		{"config", "set", "bogus.key", "x"},
		{"config", "set", "output.format", "table"},
		{"config", "set", "codec", "rot13"},
		{"config", "set", "timeout", "soon"},
		{"config", "set", "rest.url"}, // missing value
	}

	for _, args := range tests {
		full := append([]string{"upstash-redis-cli", "--config", path}, args...)
		if err := app.Run(full); err == nil {
			t.Errorf("%v should fail", args)
		}
	}
}

func TestConfigEncrypt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	app := App()

	if err := app.Run([]string{"upstash-redis-cli", "--config", path,
		"config", "set", "rest.token", "AYNgASQg"}); err != nil {
		t.Fatalf("config set rest.token error = %v", err)
	}
	if err := app.Run([]string{"upstash-redis-cli", "--config", path, "--passphrase", "hunter2",
		"config", "encrypt"}); err != nil {
		t.Fatalf("config encrypt error = %v", err)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !cfg.TokenSealed() {
		t.Fatal("token should be sealed after config encrypt")
	}

	token, err := cfg.ResolveToken([]byte("hunter2"))
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if token != "AYNgASQg" {
		t.Errorf("ResolveToken() = %q", token)
	}

	// Sealing twice must fail.
	if err := app.Run([]string{"upstash-redis-cli", "--config", path, "--passphrase", "hunter2",
		"config", "encrypt"}); err == nil {
		t.Error("config encrypt on a sealed token should fail")
	}
}

func TestRun_ExecutesCommand(t *testing.T) {
	var gotBody []any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprintf(w, `{"result":%q}`, base64.StdEncoding.EncodeToString([]byte("hello")))
	}))
	defer server.Close()

	app := App()
	err := app.Run([]string{"upstash-redis-cli",
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--url", server.URL, "--token", "test-token",
		"run", "GET", "greeting"})
	if err != nil {
		t.Fatalf("run error = %v", err)
	}

	want := []any{"GET", "greeting"}
	if len(gotBody) != 2 || gotBody[0] != want[0] || gotBody[1] != want[1] {
		t.Errorf("request body = %v, want %v", gotBody, want)
	}
}

func TestRun_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"WRONGTYPE Operation against a key holding the wrong kind of value"}`)
	}))
	defer server.Close()

	app := App()
	err := app.Run([]string{"upstash-redis-cli",
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--url", server.URL, "--token", "test-token",
		"run", "INCR", "alist"})
	if err == nil {
		t.Fatal("run should surface the server error")
	}
}

func TestRun_NoArgs(t *testing.T) {
	app := App()
	err := app.Run([]string{"upstash-redis-cli",
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--url", "https://example-db.upstash.io", "--token", "t",
		"run"})
	if err == nil {
		t.Fatal("run without a command should fail")
	}
}
