package redis

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/upstash/redis-go/internal/protocol"
)

// Environment variables read by FromEnv.
const (
	EnvURL   = "UPSTASH_REDIS_REST_URL"
	EnvToken = "UPSTASH_REDIS_REST_TOKEN"
)

// Default client behavior.
const (
	DefaultRetries       = 1
	DefaultRetryInterval = 3 * time.Second

	// RetriesDisabled turns transport retries off entirely: every command
	// gets exactly one attempt.
	RetriesDisabled = -1
)

// Telemetry overrides the identification headers sent with every request.
// Unset fields keep their computed defaults.
type Telemetry = protocol.Telemetry

// Options configures a Client. The zero value of every optional field
// selects a sensible default; only URL and Token are required.
type Options struct {
	// URL is the database REST endpoint, e.g.
	// https://tolerant-gecko-12345.upstash.io.
	URL string

	// Token is the database REST token.
	Token string

	// DisableBase64 turns off the binary-safe response encoding and
	// requests plain JSON payloads. Responses containing non-UTF-8 data
	// can be mangled by the server in this mode.
	DisableBase64 bool

	// Retries is the number of additional attempts after a failed one.
	// Zero means DefaultRetries; RetriesDisabled means none. Only
	// transport failures are retried, never server-reported errors.
	Retries int

	// RetryInterval is the wait between attempts. Zero means
	// DefaultRetryInterval; a negative value means no wait.
	RetryInterval time.Duration

	// DisableTelemetry suppresses the SDK identification headers.
	DisableTelemetry bool

	// Telemetry overrides individual identification headers.
	Telemetry Telemetry

	// DisableReadYourWrites stops the client from replaying the server's
	// sync token, giving up the read-your-writes guarantee across
	// replicas.
	DisableReadYourWrites bool

	// HTTPClient overrides the HTTP client used for requests.
	HTTPClient *http.Client

	// Logger receives client debug logs. Nil means slog.Default().
	Logger *slog.Logger

	// Limiter, when set, bounds the request rate client-side. Each
	// attempt waits for the limiter before sending.
	Limiter *rate.Limiter
}

// withDefaults returns a copy of the options with unset fields filled in.
func (o Options) withDefaults() Options {
	o.URL = strings.TrimRight(o.URL, "/")
	switch {
	case o.Retries == 0:
		o.Retries = DefaultRetries
	case o.Retries < 0:
		o.Retries = 0
	}
	switch {
	case o.RetryInterval == 0:
		o.RetryInterval = DefaultRetryInterval
	case o.RetryInterval < 0:
		o.RetryInterval = 0
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// verify validates the options.
func (o *Options) verify() error {
	if o.URL == "" {
		return errors.New("redis: URL is required")
	}
	u, err := url.Parse(o.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("redis: URL scheme must be http or https, got %q", u.Scheme)
	}
	if o.Token == "" {
		return errors.New("redis: token is required")
	}
	return nil
}

func (o *Options) encoding() protocol.Encoding {
	if o.DisableBase64 {
		return protocol.EncodingNone
	}
	return protocol.EncodingBase64
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// lookupEnv indirection for tests.
var lookupEnv = os.LookupEnv
