// Package buildinfo exposes build-time information injected via ldflags:
//
//   - Version: Semantic version (e.g., "v1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// Usage:
//
//	go build -ldflags "-X github.com/upstash/redis-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Version is reported to the server through the Upstash-Telemetry-Sdk
// header, so releases must keep it in sync with the module tag.
package buildinfo
