// Package confloader provides configuration loading for the CLI.
//
// It implements a layered loader on top of koanf. Sources merge in
// priority order (highest to lowest):
//
//  1. Command-line flags (merged via LoadMap)
//  2. Environment variables (UPSTASH_REDIS_*)
//  3. Configuration file (YAML)
//
// A Watcher can be attached to the configuration file so long-running
// sessions (the REPL) pick up credential rotations without a restart.
package confloader
