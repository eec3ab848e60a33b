// Package mcp serves gitpulse repository summaries as Model Context Protocol
// tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/gitpulse/pkg/observability"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
	"github.com/Sumatoshi-tech/gitpulse/pkg/version"
)

const serverName = "gitpulse"

// ServerDeps holds the injectable dependencies. Zero values are usable.
type ServerDeps struct {
	Logger  *slog.Logger
	Metrics *observability.REDMetrics
	Tracer  trace.Tracer

	// Defaults seeds every repo_summary call; tool arguments override it.
	Defaults repoinfo.Options
}

// Server wraps the MCP SDK server with the gitpulse tools.
type Server struct {
	inner *mcpsdk.Server
	deps  ServerDeps

	mu    sync.RWMutex
	tools []string
}

// NewServer creates a server with every tool registered.
func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	inner := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: version.Version,
	}, nil)

	srv := &Server{inner: inner, deps: deps}

	srv.registerRepoSummaryTool()

	return srv
}

// ListToolNames returns the sorted names of the registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run serves on stdio until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport serves on transport until ctx is canceled or the
// connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	s.deps.Logger.InfoContext(ctx, "mcp server starting", "tools", s.ListToolNames())

	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

func (s *Server) registerRepoSummaryTool() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameRepoSummary,
		Description: repoSummaryToolDescription,
	}, withMetrics(s.deps.Metrics, ToolNameRepoSummary,
		withTracing[RepoSummaryInput](s.deps.Tracer, ToolNameRepoSummary, s.handleRepoSummary)))

	s.trackTool(ToolNameRepoSummary)
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}

const mcpSpanPrefix = "mcp."

// withTracing opens a server span per call.
func withTracing[In any](
	tracer trace.Tracer,
	toolName string,
	handler mcpsdk.ToolHandlerFor[In, any],
) mcpsdk.ToolHandlerFor[In, any] {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, any, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)
		if result != nil {
			span.SetAttributes(attribute.Bool("mcp.is_error", result.IsError))
		}

		return result, output, err
	}
}

// withMetrics records RED metrics per call. Error results count as failures.
func withMetrics[In any](
	metrics *observability.REDMetrics,
	toolName string,
	handler mcpsdk.ToolHandlerFor[In, any],
) mcpsdk.ToolHandlerFor[In, any] {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, any, error) {
		done := metrics.Track(ctx, mcpSpanPrefix+toolName)

		result, output, err := handler(ctx, req, input)

		outcome := err
		if outcome == nil && result != nil && result.IsError {
			outcome = errToolResult
		}

		done(outcome)

		return result, output, err
	}
}

const repoSummaryToolDescription = "Summarize a Git repository: branch, commit count, size on disk, " +
	"top authors, lines of code per language, and the daily commit activity of the last year. " +
	"Accepts an absolute repository path and optional limits."
