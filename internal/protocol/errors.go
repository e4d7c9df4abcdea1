package protocol

import (
	"errors"
	"fmt"
)

// ProtocolError is an error reported by the server inside a response
// envelope. The message is preserved verbatim. Envelope errors describe the
// command, not the connection, so they are never retried.
type ProtocolError struct {
	Message string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return e.Message
}

// Is reports equality by message so sentinel comparison works.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// TransportError wraps the last transport-level failure after all retry
// attempts are exhausted. Unwrap exposes the underlying error unchanged.
type TransportError struct {
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Attempts == 1 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response payload the decoder cannot handle: a leaf
// of an unexpected type, or a string that is not valid base64.
type DecodeError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode result: %s: %v", e.Message, e.Cause)
	}
	return "decode result: " + e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// SerializeError reports a command token that cannot be represented on the
// wire. It is raised before any network activity.
type SerializeError struct {
	Index int
	Cause error
}

// Error implements the error interface.
func (e *SerializeError) Error() string {
	return fmt.Sprintf("serialize command token %d: %v", e.Index, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SerializeError) Unwrap() error {
	return e.Cause
}

// IsProtocolError reports whether err carries a server-reported error.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
