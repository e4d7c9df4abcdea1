package redis

import (
	"errors"
	"fmt"

	"github.com/upstash/redis-go/internal/format"
	"github.com/upstash/redis-go/internal/protocol"
)

// ErrNil is returned by typed accessors when the server reports no value:
// a missing key, a member outside the set, an empty pop.
var ErrNil = errors.New("redis: nil")

// Error kinds surfaced by the client. ProtocolError carries a
// server-reported message verbatim and is never retried; TransportError
// wraps the last connection-level failure after retries are exhausted;
// DecodeError and ContractError report replies that violate the wire
// contract.
type (
	ProtocolError  = protocol.ProtocolError
	TransportError = protocol.TransportError
	DecodeError    = protocol.DecodeError
	ContractError  = format.ContractError
)

// ValidationError reports a client-side argument error detected before any
// request is sent.
type ValidationError struct {
	Command string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func validationErr(command, formatStr string, args ...any) *ValidationError {
	return &ValidationError{Command: command, Message: fmt.Sprintf(formatStr, args...)}
}

// IsServerError reports whether err is an error message reported by the
// server rather than a client or connection failure.
func IsServerError(err error) bool {
	return protocol.IsProtocolError(err)
}

// IsNil reports whether err means the server had no value to return.
func IsNil(err error) bool {
	return errors.Is(err, ErrNil)
}
