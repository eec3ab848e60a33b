package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/pkg/observability"
	"github.com/Sumatoshi-tech/gitpulse/pkg/version"
)

// logLevel maps the persistent --verbose and --quiet flags to a level.
func logLevel(cmd *cobra.Command) slog.Level {
	if flagBool(cmd, "quiet") {
		return slog.LevelError
	}

	if flagBool(cmd, "verbose") {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

func flagBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}

	return value
}

func initObservability(
	mode observability.AppMode,
	level slog.Level,
	logJSON bool,
	prometheus bool,
	logOut io.Writer,
) (observability.Providers, error) {
	cfg := observability.FromEnv(observability.DefaultConfig())
	cfg.ServiceVersion = version.Version
	cfg.Mode = mode
	cfg.LogLevel = level
	cfg.LogJSON = logJSON
	cfg.Prometheus = prometheus
	cfg.DebugTrace = level <= slog.LevelDebug

	return observability.InitWithWriter(cfg, logOut)
}

func shutdownObservability(providers observability.Providers) {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}
