package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Rest struct {
		URL   string `koanf:"url"`
		Token string `koanf:"token"`
	} `koanf:"rest"`
	Output struct {
		Format  string `koanf:"format"`
		NoColor bool   `koanf:"nocolor"`
	} `koanf:"output"`
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil {
		t.Fatal("NewLoader() returned nil")
	}
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
}

func TestLoader_LoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
rest:
  url: "https://example-db.upstash.io"
  token: "AYNgASQg"
output:
  format: "json"
  nocolor: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader()
	if err := l.LoadFile(configPath); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if url := l.GetString("rest.url"); url != "https://example-db.upstash.io" {
		t.Errorf("rest.url = %q, want %q", url, "https://example-db.upstash.io")
	}
	if !l.GetBool("output.nocolor") {
		t.Error("output.nocolor should be true")
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_LoadFile_Empty(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") should not error, got: %v", err)
	}
}

func TestLoader_LoadEnv(t *testing.T) {
	t.Setenv("UPSTASH_REDIS_REST_URL", "https://env-db.upstash.io")
	t.Setenv("UPSTASH_REDIS_OUTPUT_FORMAT", "yaml")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if url := l.GetString("rest.url"); url != "https://env-db.upstash.io" {
		t.Errorf("rest.url = %q, want %q", url, "https://env-db.upstash.io")
	}
	if format := l.GetString("output.format"); format != "yaml" {
		t.Errorf("output.format = %q, want %q", format, "yaml")
	}
}

func TestLoader_LoadEnv_CustomPrefix(t *testing.T) {
	t.Setenv("MYAPP_REST_URL", "https://custom.upstash.io")

	l := NewLoader(WithEnvPrefix("MYAPP_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}

	if url := l.GetString("rest.url"); url != "https://custom.upstash.io" {
		t.Errorf("rest.url = %q, want %q", url, "https://custom.upstash.io")
	}
}

func TestLoader_LoadMap(t *testing.T) {
	l := NewLoader()

	data := map[string]any{
		"rest.url": "https://flag-db.upstash.io",
		"verbose":  true,
	}

	if err := l.LoadMap(data); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if url := l.GetString("rest.url"); url != "https://flag-db.upstash.io" {
		t.Errorf("rest.url = %q, want %q", url, "https://flag-db.upstash.io")
	}
	if !l.GetBool("verbose") {
		t.Error("verbose should be true")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
rest:
  url: "https://file-db.upstash.io"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("UPSTASH_REDIS_REST_URL", "https://env-db.upstash.io")

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Rest.URL != "https://env-db.upstash.io" {
		t.Errorf("URL = %q, want %q (env should override file)",
			cfg.Rest.URL, "https://env-db.upstash.io")
	}
}

func TestLoader_Unmarshal(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
rest:
  url: "https://example-db.upstash.io"
  token: "AYNgASQg"
output:
  format: "plain"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	l := NewLoader(WithConfigFile(configPath))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Rest.URL != "https://example-db.upstash.io" {
		t.Errorf("URL = %q, want %q", cfg.Rest.URL, "https://example-db.upstash.io")
	}
	if cfg.Rest.Token != "AYNgASQg" {
		t.Errorf("Token = %q, want %q", cfg.Rest.Token, "AYNgASQg")
	}
	if cfg.Output.Format != "plain" {
		t.Errorf("Format = %q, want %q", cfg.Output.Format, "plain")
	}
}

func TestLoader_IsLoaded(t *testing.T) {
	l := NewLoader()

	if l.IsLoaded() {
		t.Error("IsLoaded() should be false before Load()")
	}

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_All(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{
		"rest.url":      "https://example-db.upstash.io",
		"output.format": "json",
	})

	all := l.All()
	if len(all) < 2 {
		t.Errorf("All() returned %d keys, want at least 2", len(all))
	}
}

func TestLoader_GetInt(t *testing.T) {
	l := NewLoader()
	l.LoadMap(map[string]any{
		"retries": 3,
	})

	if n := l.GetInt("retries"); n != 3 {
		t.Errorf("GetInt(retries) = %d, want %d", n, 3)
	}
}
