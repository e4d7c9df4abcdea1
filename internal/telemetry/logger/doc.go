// Package logger builds the structured loggers used by the SDK and the
// CLI.
//
// It wraps log/slog with level parsing, a process-wide dynamic level, and
// automatic redaction of credentials: REST tokens, bearer headers, and any
// attribute whose key suggests secret material never reach the output.
package logger
