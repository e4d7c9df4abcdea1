package logger

import (
	"log/slog"
	"strings"
)

// Key patterns whose string values are always redacted. REST credentials
// travel under these names throughout the codebase.
var sensitiveKeyPatterns = []string{
	"token",
	"secret",
	"password",
	"credential",
	"authorization",
	"passphrase",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive rewrites attributes that carry credentials. Bearer
// header values keep their scheme with the token masked; anything under a
// sensitive key is replaced entirely. Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		val := a.Value.String()

		if rest, ok := strings.CutPrefix(val, "Bearer "); ok {
			return slog.String(a.Key, "Bearer "+maskValue(rest))
		}

		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if val != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the first and last three characters of a credential so
// log lines stay correlatable without being replayable.
func maskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// RedactString masks a credential for manual inclusion in a log message.
func RedactString(value string) string {
	return maskValue(value)
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
