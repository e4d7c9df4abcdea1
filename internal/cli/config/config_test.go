package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != "plain" {
		t.Errorf("Format = %q, want plain default", cfg.Output.Format)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
rest:
  url: "https://example-db.upstash.io"
  token: "AYNgASQg"
output:
  format: "json"
timeout: "5s"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Rest.URL != "https://example-db.upstash.io" {
		t.Errorf("URL = %q", cfg.Rest.URL)
	}
	if cfg.Rest.Token != "AYNgASQg" {
		t.Errorf("Token = %q", cfg.Rest.Token)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
rest:
  url: "https://file-db.upstash.io"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("UPSTASH_REDIS_REST_URL", "https://env-db.upstash.io")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Rest.URL != "https://env-db.upstash.io" {
		t.Errorf("URL = %q, want env value", cfg.Rest.URL)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Rest.URL = "https://example-db.upstash.io"
	cfg.Rest.Token = "AYNgASQg"
	cfg.Codec = "snappy"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Rest.URL != cfg.Rest.URL || got.Rest.Token != cfg.Rest.Token || got.Codec != cfg.Codec {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestConfig_SealResolveToken(t *testing.T) {
	cfg := Default()
	cfg.Rest.Token = "AYNgASQgNmE2YTkyMGM"

	if cfg.TokenSealed() {
		t.Error("TokenSealed() should be false for a plain token")
	}

	if err := cfg.SealToken([]byte("hunter2")); err != nil {
		t.Fatalf("SealToken() error = %v", err)
	}
	if !cfg.TokenSealed() {
		t.Error("TokenSealed() should be true after SealToken()")
	}
	if strings.Contains(cfg.Rest.Token, "AYNgASQgNmE2YTkyMGM") {
		t.Error("sealed token still contains the plaintext")
	}

	if err := cfg.SealToken([]byte("hunter2")); err == nil {
		t.Error("SealToken() should refuse to double-seal")
	}

	token, err := cfg.ResolveToken([]byte("hunter2"))
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if token != "AYNgASQgNmE2YTkyMGM" {
		t.Errorf("ResolveToken() = %q", token)
	}

	if _, err := cfg.ResolveToken(nil); err == nil {
		t.Error("ResolveToken() without passphrase should fail for a sealed token")
	}
	if _, err := cfg.ResolveToken([]byte("wrong")); err == nil {
		t.Error("ResolveToken() with wrong passphrase should fail")
	}
}

func TestConfig_ResolveToken_Plain(t *testing.T) {
	cfg := Default()
	cfg.Rest.Token = "AYNgASQg"

	token, err := cfg.ResolveToken(nil)
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if token != "AYNgASQg" {
		t.Errorf("ResolveToken() = %q", token)
	}
}

func TestConfig_SealToken_Empty(t *testing.T) {
	cfg := Default()
	if err := cfg.SealToken([]byte("pass")); err == nil {
		t.Error("SealToken() should fail without a token")
	}
}
