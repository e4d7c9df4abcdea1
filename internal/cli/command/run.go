package command

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/cli/valuecodec"
	"github.com/upstash/redis-go/pkg/redis"
)

// RunCommand returns the one-shot command runner.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute a single command",
		ArgsUsage: "COMMAND [ARG...]",
		Description: `Sends one command and prints the result, e.g.:

   upstash-redis-cli run SET greeting hello
   upstash-redis-cli run GET greeting
   upstash-redis-cli --codec gzip run GET session:42`,
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("a command is required, e.g. run GET mykey")
	}

	s, err := resolveSettings(c)
	if err != nil {
		return err
	}

	client, err := s.buildClient()
	if err != nil {
		return err
	}

	ctx := c.Context
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	raw := c.Args().Slice()
	args := make([]any, len(raw))
	for i, a := range raw {
		args[i] = a
	}

	result, err := client.Do(ctx, args...)
	if err != nil {
		var perr *redis.ProtocolError
		if errors.As(err, &perr) {
			return fmt.Errorf("(error) %s", perr.Message)
		}
		return err
	}

	if s.codec != nil {
		result = valuecodec.DecodeLeaves(s.codec, result)
	}

	formatter := output.NewFormatter(s.format, s.noColor)
	return formatter.Format(os.Stdout, result)
}
