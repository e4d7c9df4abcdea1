// Package protocol implements the Upstash Redis REST wire protocol: command
// serialization, request execution with bounded retries, response envelope
// validation, and recursive base64 result decoding.
//
// A Redis command is an ordered list of heterogeneous tokens. The REST API
// accepts it as a JSON array POSTed to the database URL and answers with an
// envelope object carrying either a result or an error. Everything above this
// package (typed commands, result shaping) builds on Execute and
// ExecutePipeline.
package protocol

import (
	"encoding/json"
	"strings"
)

// Command is a single Redis command: the command name followed by its
// arguments, in wire order.
type Command []any

// Name returns the dispatch name of the command: the uppercased first token.
// Container commands (SCRIPT, PUBSUB, XGROUP) dispatch on their subcommand
// as well, so the second token is appended for them when present.
func Name(cmd Command) string {
	if len(cmd) == 0 {
		return ""
	}
	first, ok := cmd[0].(string)
	if !ok {
		return ""
	}
	name := strings.ToUpper(first)
	switch name {
	case "SCRIPT", "PUBSUB", "XGROUP":
		if len(cmd) > 1 {
			if sub, ok := cmd[1].(string); ok {
				return name + " " + strings.ToUpper(sub)
			}
		}
	}
	return name
}

// Serialize converts a command into the token list sent on the wire.
// String and numeric tokens pass through unchanged; every other token is
// replaced by its JSON text so the command array stays a flat list of
// strings and numbers.
func Serialize(cmd Command) ([]any, error) {
	out := make([]any, len(cmd))
	for i, tok := range cmd {
		switch v := tok.(type) {
		case string:
			out[i] = v
		case int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64, json.Number:
			out[i] = v
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, &SerializeError{Index: i, Cause: err}
			}
			out[i] = string(data)
		}
	}
	return out, nil
}
