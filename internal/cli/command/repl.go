package command

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/upstash/redis-go/internal/cli/config"
	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/cli/repl"
	"github.com/upstash/redis-go/internal/infra/confloader"
	"github.com/upstash/redis-go/internal/infra/shutdown"
)

// historyFileName stores REPL history in the home directory.
const historyFileName = ".upstash-redis-cli_history"

// ReplCommand returns the interactive mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive session",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	client, err := s.buildClient()
	if err != nil {
		return err
	}

	r := repl.New(client, repl.Options{
		Prompt:      promptFromURL(s.cfg.Rest.URL),
		HistoryFile: historyFilePath(),
		Timeout:     s.timeout,
		Formatter:   output.NewFormatter(s.format, s.noColor),
		Codec:       s.codec,
		NoColor:     s.noColor,
	})

	// Long sessions survive credential rotation: watch the config file
	// and swap the client when it changes.
	watcher := watchConfig(c, s, r)

	handler := shutdown.NewHandler(5 * time.Second)
	if watcher != nil {
		handler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}
	go handler.Wait()

	err = r.Run(c.Context)
	handler.Trigger()
	<-handler.Done()
	return err
}

// watchConfig starts a config file watcher that rebuilds the client on
// change. Watch failures are not fatal; the session just won't reload.
func watchConfig(c *cli.Context, s *settings, r *repl.REPL) *confloader.Watcher {
	path := s.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(s.logger))
	if err != nil {
		s.logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := watcher.Watch(path); err != nil {
		s.logger.Warn("cannot watch config file", "path", path, "error", err)
		return nil
	}

	watcher.OnChange(func(changed string) {
		if filepath.Base(changed) != filepath.Base(path) {
			return
		}
		fresh, err := resolveSettings(c)
		if err != nil {
			s.logger.Warn("config reload failed", "error", err)
			return
		}
		fresh.sensitive = s.sensitive // reuse the passphrase, don't re-prompt
		client, err := fresh.buildClient()
		if err != nil {
			s.logger.Warn("config reload failed", "error", err)
			return
		}
		r.SetClient(client)
		s.logger.Info("credentials reloaded", "path", changed)
	})
	watcher.StartAsync()
	return watcher
}

// promptFromURL derives the prompt from the database host.
func promptFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "redis> "
	}
	return fmt.Sprintf("%s> ", u.Host)
}

func historyFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, historyFileName)
}
