// Package command defines the upstash-redis-cli commands.
//
// It uses urfave/cli/v2 for command parsing and supports both one-shot
// command mode and an interactive REPL.
package command

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/upstash/redis-go/internal/cli/config"
	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/cli/valuecodec"
	"github.com/upstash/redis-go/internal/infra/buildinfo"
	"github.com/upstash/redis-go/internal/infra/tlsroots"
	"github.com/upstash/redis-go/internal/telemetry/logger"
	"github.com/upstash/redis-go/pkg/redis"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "upstash-redis-cli",
		Usage:   "command-line client for the Upstash Redis REST API",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			ReplCommand(),
			ConfigCommand(),
			PingCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "database REST URL (e.g. https://tolerant-gecko-12345.upstash.io)",
			EnvVars: []string{redis.EnvURL},
		},
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "database REST token",
			EnvVars: []string{redis.EnvToken},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: plain, json, yaml",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path (default ~/" + config.FileName + ")",
		},
		&cli.StringFlag{
			Name:  "codec",
			Usage: "display codec for stored values: base64, gzip, snappy",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-command timeout (0 disables)",
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Usage:   "passphrase for a sealed token (prompted when omitted)",
			EnvVars: []string{"UPSTASH_REDIS_PASSPHRASE"},
		},
	}
}

// settings is the merged view of config file, environment, and flags.
type settings struct {
	cfg       *config.Config
	format    output.Format
	noColor   bool
	codec     valuecodec.Codec
	timeout   time.Duration
	logger    *slog.Logger
	cfgPath   string
	sensitive []byte // passphrase, if given
}

// resolveSettings loads the config file and applies flag overrides.
func resolveSettings(c *cli.Context) (*settings, error) {
	cfgPath := c.String("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if v := c.String("url"); v != "" {
		cfg.Rest.URL = v
	}
	if v := c.String("token"); v != "" {
		cfg.Rest.Token = v
	}
	if v := c.String("output"); v != "" {
		cfg.Output.Format = v
	}
	if c.Bool("no-color") {
		cfg.Output.NoColor = true
	}
	if v := c.String("codec"); v != "" {
		cfg.Codec = v
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	format := output.FormatPlain
	if cfg.Output.Format != "" {
		format, err = output.ParseFormat(cfg.Output.Format)
		if err != nil {
			return nil, err
		}
	}

	var codec valuecodec.Codec
	if cfg.Codec != "" {
		codec, err = valuecodec.Lookup(cfg.Codec)
		if err != nil {
			return nil, err
		}
	}

	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Level: level, Format: "text", Output: os.Stderr})

	return &settings{
		cfg:       cfg,
		format:    format,
		noColor:   cfg.Output.NoColor,
		codec:     codec,
		timeout:   cfg.Timeout,
		logger:    log,
		cfgPath:   cfgPath,
		sensitive: []byte(c.String("passphrase")),
	}, nil
}

// buildClient constructs a redis client from the resolved settings.
func (s *settings) buildClient() (*redis.Client, error) {
	token, err := s.resolveToken()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if s.cfg.CACert != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return nil, err
		}
		if err := pool.AddCertFile(s.cfg.CACert); err != nil {
			return nil, err
		}
		httpClient.Transport = &http.Transport{TLSClientConfig: pool.TLSConfig()}
	}

	return redis.New(redis.Options{
		URL:        s.cfg.Rest.URL,
		Token:      token,
		HTTPClient: httpClient,
		Logger:     s.logger,
	})
}

// resolveToken unseals the stored token, prompting for a passphrase when
// one is needed and none was given.
func (s *settings) resolveToken() (string, error) {
	if !s.cfg.TokenSealed() {
		return s.cfg.Rest.Token, nil
	}

	if len(s.sensitive) == 0 {
		passphrase, err := promptPassphrase("Passphrase: ")
		if err != nil {
			return "", err
		}
		s.sensitive = passphrase
	}

	return s.cfg.ResolveToken(s.sensitive)
}

// promptPassphrase reads a passphrase without echo.
func promptPassphrase(prompt string) ([]byte, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	passphrase, err := rl.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("read passphrase: %w", err)
	}
	return passphrase, nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
