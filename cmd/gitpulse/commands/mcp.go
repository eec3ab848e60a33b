package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/pkg/config"
	"github.com/Sumatoshi-tech/gitpulse/pkg/mcp"
	"github.com/Sumatoshi-tech/gitpulse/pkg/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		debug           bool
		configPath      string
		diagnosticsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

Tools:
  - repo_summary: branch, commits, size, top authors, languages, and the
    daily commit activity of the last year for a local repository

With --diagnostics-addr an HTTP listener serves /healthz and Prometheus
/metrics alongside the stdio transport.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			defaults, err := collectOptions(cfg)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}

			providers, err := initObservability(
				observability.ModeMCP, level, true, diagnosticsAddr != "", cobraCmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer shutdownObservability(providers)

			if diagnosticsAddr != "" {
				diag, diagErr := observability.NewDiagnosticsServer(
					diagnosticsAddr, providers.MetricsHandler, providers.Logger)
				if diagErr != nil {
					return diagErr
				}

				defer func() { _ = diag.Close(context.Background()) }()

				providers.Logger.Info("diagnostics listening", "addr", diag.Addr())
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:   providers.Logger,
				Metrics:  providers.Metrics,
				Tracer:   providers.Tracer,
				Defaults: defaults,
			})

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file supplying default limits")
	cmd.Flags().StringVar(&diagnosticsAddr, "diagnostics-addr", "",
		"Serve /healthz and Prometheus /metrics on this address (e.g. 127.0.0.1:9464)")

	return cmd
}
