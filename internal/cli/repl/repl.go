package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/upstash/redis-go/internal/cli/output"
	"github.com/upstash/redis-go/internal/cli/valuecodec"
	"github.com/upstash/redis-go/pkg/redis"
)

// Doer executes a raw command. *redis.Client satisfies it.
type Doer interface {
	Do(ctx context.Context, args ...any) (any, error)
}

// Options configures the REPL.
type Options struct {
	// Prompt defaults to "redis> ".
	Prompt string

	// HistoryFile holds readline history; empty disables persistence.
	HistoryFile string

	// Timeout bounds each command. Zero means no timeout.
	Timeout time.Duration

	// Formatter renders results; defaults to the plain formatter.
	Formatter output.Formatter

	// Codec is the default display codec, overridable per line with
	// a trailing "| name".
	Codec valuecodec.Codec

	// NoColor disables error coloring.
	NoColor bool

	// Out defaults to the readline stdout.
	Out io.Writer
}

// REPL is the interactive loop.
type REPL struct {
	mu     sync.Mutex
	client Doer
	opts   Options
	errc   *color.Color
}

// New creates a REPL around a client.
func New(client Doer, opts Options) *REPL {
	if opts.Prompt == "" {
		opts.Prompt = "redis> "
	}
	if opts.Formatter == nil {
		opts.Formatter = output.NewPlainFormatter(opts.NoColor)
	}

	errc := color.New(color.FgRed)
	if opts.NoColor {
		errc.DisableColor()
	}

	return &REPL{client: client, opts: opts, errc: errc}
}

// SetClient swaps the client. The config watcher uses this when
// credentials rotate mid-session.
func (r *REPL) SetClient(client Doer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = client
}

// Run starts the loop and returns when the user exits.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.opts.Prompt,
		HistoryFile:     r.opts.HistoryFile,
		AutoComplete:    completer{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	out := r.opts.Out
	if out == nil {
		out = rl.Stdout()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "help":
			printHelp(out)
			continue
		}

		r.Eval(ctx, out, line)
	}
}

// Eval parses and executes one input line, printing the result or error.
func (r *REPL) Eval(ctx context.Context, out io.Writer, line string) {
	args, codecName := ParseLine(line)
	if len(args) == 0 {
		return
	}

	codec := r.opts.Codec
	if codecName != "" {
		c, err := valuecodec.Lookup(codecName)
		if err != nil {
			r.errc.Fprintf(out, "(error) %v\n", err)
			return
		}
		codec = c
	}

	doArgs := make([]any, len(args))
	for i, a := range args {
		doArgs[i] = a
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	r.mu.Lock()
	client := r.client
	r.mu.Unlock()

	result, err := client.Do(ctx, doArgs...)
	if err != nil {
		var perr *redis.ProtocolError
		if errors.As(err, &perr) {
			r.errc.Fprintf(out, "(error) %s\n", perr.Message)
		} else {
			r.errc.Fprintf(out, "(error) %v\n", err)
		}
		return
	}

	if codec != nil {
		result = valuecodec.DecodeLeaves(codec, result)
	}

	if err := r.opts.Formatter.Format(out, result); err != nil {
		r.errc.Fprintf(out, "(error) %v\n", err)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `Type any Redis command, for example:
  SET greeting "hello"
  GET greeting
  HGETALL user:42

Append "| base64", "| gzip" or "| snappy" to decode stored values
for display. Type "exit" or "quit" to leave.`)
}
