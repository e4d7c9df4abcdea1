package protocol

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// DecodeJSON decodes JSON into a generic tree. Numbers are normalized to
// int64 where they fit, float64 otherwise, so integer values survive the
// trip without float rounding.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return normalizeNumbers(raw), nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return string(t)
	case []any:
		for i, el := range t {
			t[i] = normalizeNumbers(el)
		}
		return t
	case map[string]any:
		for k, el := range t {
			t[k] = normalizeNumbers(el)
		}
		return t
	}
	return v
}

// Envelope validates a parsed response body and extracts the result payload.
// A response is an object carrying "result" or "error"; a non-empty error
// becomes a ProtocolError with the server's message verbatim. Anything else,
// including an object with neither field, is a malformed envelope.
func Envelope(raw any) (any, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed response envelope: got %T, want object", raw)}
	}
	if v, ok := obj["error"]; ok {
		if msg, ok := v.(string); ok && msg != "" {
			return nil, &ProtocolError{Message: msg}
		}
	}
	res, ok := obj["result"]
	if !ok {
		return nil, &ProtocolError{Message: "malformed response envelope: missing result and error"}
	}
	return res, nil
}
