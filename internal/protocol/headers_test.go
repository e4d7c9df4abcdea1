package protocol

import (
	"strings"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func TestBuildHeaders_Authorization(t *testing.T) {
	h := BuildHeaders(HeaderConfig{Token: "secret-token", LookupEnv: noEnv})
	if got := h.Get("Authorization"); got != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer secret-token")
	}
}

func TestBuildHeaders_Encoding(t *testing.T) {
	tests := []struct {
		name     string
		encoding Encoding
		want     string
	}{
		{"base64", EncodingBase64, "base64"},
		{"none", EncodingNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := BuildHeaders(HeaderConfig{Token: "t", Encoding: tt.encoding, LookupEnv: noEnv})
			if got := h.Get("Upstash-Encoding"); got != tt.want {
				t.Errorf("Upstash-Encoding = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildHeaders_TelemetryDisabled(t *testing.T) {
	h := BuildHeaders(HeaderConfig{Token: "t", LookupEnv: noEnv})
	for _, key := range []string{"Upstash-Telemetry-Sdk", "Upstash-Telemetry-Runtime", "Upstash-Telemetry-Platform"} {
		if got := h.Get(key); got != "" {
			t.Errorf("%s = %q, want empty", key, got)
		}
	}
}

func TestBuildHeaders_TelemetryDefaults(t *testing.T) {
	h := BuildHeaders(HeaderConfig{Token: "t", AllowTelemetry: true, LookupEnv: noEnv})

	if got := h.Get("Upstash-Telemetry-Sdk"); !strings.HasPrefix(got, "upstash-redis-go@v") {
		t.Errorf("Upstash-Telemetry-Sdk = %q, want prefix %q", got, "upstash-redis-go@v")
	}
	if got := h.Get("Upstash-Telemetry-Runtime"); !strings.HasPrefix(got, "go@v") {
		t.Errorf("Upstash-Telemetry-Runtime = %q, want prefix %q", got, "go@v")
	}
	if got := h.Get("Upstash-Telemetry-Platform"); got != "unknown" {
		t.Errorf("Upstash-Telemetry-Platform = %q, want %q", got, "unknown")
	}
}

func TestBuildHeaders_TelemetryPlatform(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"vercel", map[string]string{"VERCEL": "1"}, "vercel"},
		{"aws", map[string]string{"AWS_REGION": "us-east-1"}, "aws"},
		{"vercel wins over aws", map[string]string{"VERCEL": "1", "AWS_REGION": "us-east-1"}, "vercel"},
		{"neither", nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				v, ok := tt.env[key]
				return v, ok
			}
			h := BuildHeaders(HeaderConfig{Token: "t", AllowTelemetry: true, LookupEnv: lookup})
			if got := h.Get("Upstash-Telemetry-Platform"); got != tt.want {
				t.Errorf("Upstash-Telemetry-Platform = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildHeaders_TelemetryOverrides(t *testing.T) {
	h := BuildHeaders(HeaderConfig{
		Token:          "t",
		AllowTelemetry: true,
		Telemetry: Telemetry{
			SDK:      "custom-sdk@v9",
			Platform: "fly",
		},
		LookupEnv: noEnv,
	})

	if got := h.Get("Upstash-Telemetry-Sdk"); got != "custom-sdk@v9" {
		t.Errorf("Upstash-Telemetry-Sdk = %q, want %q", got, "custom-sdk@v9")
	}
	if got := h.Get("Upstash-Telemetry-Platform"); got != "fly" {
		t.Errorf("Upstash-Telemetry-Platform = %q, want %q", got, "fly")
	}
	// Unset fields still get defaults.
	if got := h.Get("Upstash-Telemetry-Runtime"); !strings.HasPrefix(got, "go@v") {
		t.Errorf("Upstash-Telemetry-Runtime = %q, want prefix %q", got, "go@v")
	}
}
