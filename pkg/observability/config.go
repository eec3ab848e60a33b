// Package observability wires OpenTelemetry tracing, metrics, and structured
// logging for the gitpulse CLI and MCP server.
package observability

import (
	"log/slog"
	"os"
	"strconv"
)

// AppMode identifies how the binary was launched.
type AppMode string

const (
	// ModeCLI renders a summary and exits.
	ModeCLI AppMode = "cli"
	// ModeMCP serves MCP over stdio.
	ModeMCP AppMode = "mcp"
)

const (
	defaultServiceName        = "gitpulse"
	defaultShutdownTimeoutSec = 5

	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"
	envOTLPInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envEnvironment  = "GITPULSE_ENV"
)

// Config holds all observability settings.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	// OTLPEndpoint is the OTLP gRPC collector address. Empty disables export.
	OTLPEndpoint string
	OTLPHeaders  map[string]string
	OTLPInsecure bool

	// DebugTrace forces every trace to be sampled.
	DebugTrace bool

	// Prometheus attaches a pull reader whose scrape handler is returned in
	// Providers.MetricsHandler.
	Prometheus bool

	LogLevel slog.Level
	LogJSON  bool

	ShutdownTimeoutSec int
}

// DefaultConfig returns a zero-export configuration logging at info level.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeCLI,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}

// FromEnv overlays the standard OTLP exporter variables on cfg.
func FromEnv(cfg Config) Config {
	if endpoint := os.Getenv(envOTLPEndpoint); endpoint != "" {
		cfg.OTLPEndpoint = endpoint
	}

	if headers := ParseOTLPHeaders(os.Getenv(envOTLPHeaders)); headers != nil {
		cfg.OTLPHeaders = headers
	}

	if insecure, err := strconv.ParseBool(os.Getenv(envOTLPInsecure)); err == nil {
		cfg.OTLPInsecure = insecure
	}

	if env := os.Getenv(envEnvironment); env != "" {
		cfg.Environment = env
	}

	return cfg
}
