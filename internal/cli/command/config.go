package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/upstash/redis-go/internal/cli/config"
	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/cli/valuecodec"
	"github.com/upstash/redis-go/internal/telemetry/logger"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the CLI configuration file",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (file + environment + flags)",
				Action: configShow,
			},
			{
				Name:      "set",
				Usage:     "Set a configuration value",
				ArgsUsage: "KEY VALUE",
				Description: `Keys: rest.url, rest.token, output.format, output.nocolor,
   codec, timeout, cacert`,
				Action: configSet,
			},
			{
				Name:   "encrypt",
				Usage:  "Seal the stored REST token with a passphrase",
				Action: configEncrypt,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	path := s.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Printf("config file: %s\n\n", path)

	// Never print the token itself.
	shown := *s.cfg
	switch {
	case shown.Rest.Token == "":
		shown.Rest.Token = "(not set)"
	case shown.TokenSealed():
		shown.Rest.Token = "(sealed)"
	default:
		shown.Rest.Token = logger.RedactString(shown.Rest.Token)
	}

	var buf bytes.Buffer
	if err := (&output.YAMLFormatter{}).Format(&buf, &shown); err != nil {
		return err
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

func configSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("usage: config set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return err
	}

	switch key {
	case "rest.url":
		cfg.Rest.URL = value
	case "rest.token":
		cfg.Rest.Token = value
	case "output.format":
		if _, err := output.ParseFormat(value); err != nil {
			return err
		}
		cfg.Output.Format = value
	case "output.nocolor":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("output.nocolor: %w", err)
		}
		cfg.Output.NoColor = b
	case "codec":
		if _, err := valuecodec.Lookup(value); err != nil {
			return err
		}
		cfg.Codec = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	case "cacert":
		cfg.CACert = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg, c.String("config")); err != nil {
		return err
	}
	fmt.Printf("%s updated\n", key)
	return nil
}

func configEncrypt(c *cli.Context) error {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return err
	}
	if cfg.Rest.Token == "" {
		return errors.New("no token stored; set one first with: config set rest.token TOKEN")
	}
	if cfg.TokenSealed() {
		return errors.New("token is already sealed")
	}

	passphrase := []byte(c.String("passphrase"))
	if len(passphrase) == 0 {
		passphrase, err = promptPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if !bytes.Equal(passphrase, confirm) {
			return errors.New("passphrases do not match")
		}
	}

	if err := cfg.SealToken(passphrase); err != nil {
		return err
	}
	if err := config.Save(cfg, c.String("config")); err != nil {
		return err
	}

	fmt.Println("token sealed; the passphrase will be required from now on")
	return nil
}
