package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestRedaction_SensitiveKeys(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"token key", "token", "AYNgASQgNmE2YTkyMGMtMzUxYi00ZDA1LWFhNjgtNDQ4ZTk"},
		{"rest_token key", "rest_token", "secret-value"},
		{"authorization key", "authorization", "some-credential"},
		{"passphrase key", "passphrase", "hunter2"},
		{"nested secret", "api_secret", "tell-no-one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: "info", Format: "json", Output: &buf})

			l.Info("logging credentials", tt.key, tt.value)

			output := buf.String()
			if strings.Contains(output, tt.value) {
				t.Errorf("output leaked the value: %s", output)
			}
			if !strings.Contains(output, redactedValue) {
				t.Errorf("output should contain the redaction placeholder: %s", output)
			}
		})
	}
}

func TestRedaction_BearerValue(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	l.Info("request", "header", "Bearer AYNgASQgNmE2YTkyMGMtMzUxYi00ZDA1")

	output := buf.String()
	if strings.Contains(output, "NmE2YTkyMGMt") {
		t.Errorf("output leaked the bearer token: %s", output)
	}
	if !strings.Contains(output, "Bearer AYN") {
		t.Errorf("output should keep the scheme with a masked token: %s", output)
	}
}

func TestRedaction_EmptyValueUntouched(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Format: "json", Output: &buf})

	l.Info("startup", "token", "")

	if strings.Contains(buf.String(), redactedValue) {
		t.Errorf("empty values should not be redacted: %s", buf.String())
	}
}

func TestRedactString(t *testing.T) {
	got := RedactString("AYNgASQgNmE2YTkyMGM")
	if got == "AYNgASQgNmE2YTkyMGM" {
		t.Error("RedactString returned the value unmasked")
	}
	if !strings.HasPrefix(got, "AYN") || !strings.HasSuffix(got, "MGM") {
		t.Errorf("RedactString = %q, want edges kept", got)
	}
	if RedactString("short") != "***" {
		t.Errorf("short values should be fully masked")
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"token", true},
		{"rest_token", true},
		{"Authorization", true},
		{"url", false},
		{"command", false},
	}
	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
