package protocol

import (
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/upstash/redis-go/internal/infra/buildinfo"
)

// Encoding selects how the server encodes response payloads.
type Encoding int

const (
	// EncodingNone requests plain responses.
	EncodingNone Encoding = iota

	// EncodingBase64 negotiates binary-safe responses: every string leaf of
	// the result arrives base64-encoded and is decoded client-side.
	EncodingBase64
)

// Telemetry identifies the SDK to the server. Zero fields are filled with
// computed defaults; set fields win.
type Telemetry struct {
	SDK      string
	Runtime  string
	Platform string
}

// HeaderConfig describes the fixed request headers of a client.
type HeaderConfig struct {
	Token          string
	Encoding       Encoding
	AllowTelemetry bool
	Telemetry      Telemetry

	// LookupEnv overrides os.LookupEnv for platform detection.
	LookupEnv func(string) (string, bool)
}

// BuildHeaders assembles the headers sent with every request: bearer
// authentication, the negotiated response encoding, and optional telemetry.
func BuildHeaders(cfg HeaderConfig) http.Header {
	lookup := cfg.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	h := make(http.Header)
	h.Set("Authorization", "Bearer "+cfg.Token)

	if cfg.Encoding == EncodingBase64 {
		h.Set("Upstash-Encoding", "base64")
	}

	if cfg.AllowTelemetry {
		sdk := cfg.Telemetry.SDK
		if sdk == "" {
			sdk = "upstash-redis-go@v" + buildinfo.Version
		}
		rt := cfg.Telemetry.Runtime
		if rt == "" {
			rt = "go@v" + strings.TrimPrefix(runtime.Version(), "go")
		}
		platform := cfg.Telemetry.Platform
		if platform == "" {
			platform = detectPlatform(lookup)
		}
		h.Set("Upstash-Telemetry-Sdk", sdk)
		h.Set("Upstash-Telemetry-Runtime", rt)
		h.Set("Upstash-Telemetry-Platform", platform)
	}

	return h
}

// detectPlatform probes well-known deployment environment variables.
func detectPlatform(lookup func(string) (string, bool)) string {
	if _, ok := lookup("VERCEL"); ok {
		return "vercel"
	}
	if _, ok := lookup("AWS_REGION"); ok {
		return "aws"
	}
	return "unknown"
}
