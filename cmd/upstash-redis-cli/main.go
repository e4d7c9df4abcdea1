// Package main provides the entry point for upstash-redis-cli.
//
// upstash-redis-cli talks to an Upstash Redis database over its REST
// API, in one-shot command mode or as an interactive REPL.
package main

import (
	"os"

	"github.com/upstash/redis-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError("%v", err)
		os.Exit(1)
	}
}
