// Package repl provides the interactive mode of the CLI.
package repl

import (
	"strings"
	"unicode"
)

// ParseLine splits an input line into command tokens plus an optional
// trailing display codec. The codec is given redis-cli pipe style but
// applies to the printed result, not a shell:
//
//	GET session:42 | gzip
//
// The pipe must be a standalone token; quoted pipes stay part of their
// argument.
func ParseLine(line string) (args []string, codecName string) {
	tokens := Tokenize(line)
	if n := len(tokens); n >= 2 && tokens[n-2] == "|" {
		return tokens[:n-2], tokens[n-1]
	}
	return tokens, ""
}

// Tokenize splits input into tokens, respecting double quotes and
// backslash escapes. A quoted token may be empty ("" is a valid value).
func Tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	escaped := false
	hasToken := false

	for _, r := range input {
		if escaped {
			current.WriteRune(r)
			escaped = false
			continue
		}

		if r == '\\' {
			escaped = true
			hasToken = true
			continue
		}

		if r == '"' {
			inQuotes = !inQuotes
			hasToken = true
			continue
		}

		if unicode.IsSpace(r) && !inQuotes {
			if hasToken {
				tokens = append(tokens, current.String())
				current.Reset()
				hasToken = false
			}
			continue
		}

		current.WriteRune(r)
		hasToken = true
	}

	if hasToken {
		tokens = append(tokens, current.String())
	}

	return tokens
}
