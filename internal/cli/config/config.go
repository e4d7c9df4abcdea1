// Package config defines the CLI configuration file.
//
// The file lives at ~/.upstash-redis-cli.yaml by default and merges with
// UPSTASH_REDIS_* environment variables through confloader. The REST
// token may be stored sealed (see internal/infra/secrets); ResolveToken
// unseals it with a passphrase.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/upstash/redis-go/internal/infra/confloader"
	"github.com/upstash/redis-go/internal/infra/secrets"
)

// FileName is the default config file name in the home directory.
const FileName = ".upstash-redis-cli.yaml"

// Config is the CLI configuration.
type Config struct {
	Rest struct {
		URL   string `koanf:"url" yaml:"url,omitempty"`
		Token string `koanf:"token" yaml:"token,omitempty"`
	} `koanf:"rest" yaml:"rest"`

	Output struct {
		Format  string `koanf:"format" yaml:"format,omitempty"`
		NoColor bool   `koanf:"nocolor" yaml:"nocolor,omitempty"`
	} `koanf:"output" yaml:"output,omitempty"`

	// Codec is the default display codec (base64, gzip, snappy).
	Codec string `koanf:"codec" yaml:"codec,omitempty"`

	// Timeout bounds each command. Zero means no timeout.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout,omitempty"`

	// CACert is a PEM file with extra root CAs, for self-hosted
	// REST-compatible endpoints behind a private CA.
	CACert string `koanf:"cacert" yaml:"cacert,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Output.Format = "plain"
	return cfg
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(homeDir, FileName)
}

// Load reads configuration from the file at path merged with
// environment variables. A missing file is not an error; environment
// variables alone can configure the CLI.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	opts := []confloader.Option{}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithConfigFile(path))
	}

	cfg := Default()
	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// LoadFile reads only the file at path, without environment merging.
// Mutating commands (config set, config encrypt) use it so environment
// values are never written back to disk. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path with owner-only permissions.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// The file can hold a REST token, sealed or not.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SealToken replaces the stored token with a sealed form.
func (c *Config) SealToken(passphrase []byte) error {
	if c.Rest.Token == "" {
		return errors.New("no token to seal")
	}
	if secrets.IsSealed(c.Rest.Token) {
		return errors.New("token is already sealed")
	}

	sealed, err := secrets.Seal([]byte(c.Rest.Token), passphrase)
	if err != nil {
		return err
	}
	c.Rest.Token = sealed
	return nil
}

// ResolveToken returns the plaintext token, unsealing it if needed.
func (c *Config) ResolveToken(passphrase []byte) (string, error) {
	if !secrets.IsSealed(c.Rest.Token) {
		return c.Rest.Token, nil
	}
	if len(passphrase) == 0 {
		return "", errors.New("token is sealed: a passphrase is required")
	}

	token, err := secrets.Open(c.Rest.Token, passphrase)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// TokenSealed reports whether the stored token is sealed.
func (c *Config) TokenSealed() bool {
	return secrets.IsSealed(c.Rest.Token)
}
