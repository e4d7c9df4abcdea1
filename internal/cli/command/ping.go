package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
)

// PingCommand returns the connectivity check command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check connectivity to the database",
		Action: pingAction,
	}
}

func pingAction(c *cli.Context) error {
	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	client, err := s.buildClient()
	if err != nil {
		return err
	}

	ctx := c.Context
	timeout := s.timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	reply, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	fmt.Printf("%s (%.1fms)\n", reply, float64(time.Since(start).Microseconds())/1000)
	return nil
}
