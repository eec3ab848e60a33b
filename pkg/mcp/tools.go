package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/gitpulse/pkg/config"
	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

// ToolNameRepoSummary is the name of the repository summary tool.
const ToolNameRepoSummary = "repo_summary"

// Sentinel errors for tool input validation.
var (
	ErrEmptyRepoPath       = errors.New("repo_path parameter is required and must not be empty")
	ErrRepoPathNotAbsolute = errors.New("repo_path must be an absolute path")
	ErrRepoNotFound        = errors.New("repository path does not exist")
	ErrNotGitRepo          = errors.New("path is not inside a git repository")
	ErrNegativeLimit       = errors.New("limits must not be negative")

	errToolResult = errors.New("tool returned an error result")
)

// RepoSummaryInput is the input schema of the repo_summary tool.
type RepoSummaryInput struct {
	RepoPath          string `json:"repo_path"                    jsonschema:"absolute path to a Git repository or a directory inside one"`
	ContributorsLimit int    `json:"contributors_limit,omitempty" jsonschema:"maximum number of commits scanned for the author ranking (default 1000)"`
	TopLanguages      int    `json:"top_languages,omitempty"      jsonschema:"number of languages reported (default 5)"`
	Timezone          string `json:"timezone,omitempty"           jsonschema:"IANA time zone used to assign commits to days (default: server local)"`
}

func (s *Server) handleRepoSummary(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input RepoSummaryInput,
) (*mcpsdk.CallToolResult, any, error) {
	err := validateRepoSummaryInput(input)
	if err != nil {
		return errorResult(err)
	}

	opts := s.deps.Defaults
	opts.Logger = s.deps.Logger
	opts.Tracer = s.deps.Tracer
	opts.Metrics = s.deps.Metrics

	if input.ContributorsLimit > 0 {
		opts.ContributorsLimit = input.ContributorsLimit
	}

	if input.TopLanguages > 0 {
		opts.TopLanguages = input.TopLanguages
	}

	if input.Timezone != "" {
		loc, locErr := config.ParseLocation(input.Timezone)
		if locErr != nil {
			return errorResult(locErr)
		}

		opts.Location = loc
	}

	repo, err := gitlib.Discover(input.RepoPath)
	if err != nil {
		return errorResult(fmt.Errorf("%w: %s", ErrNotGitRepo, input.RepoPath))
	}
	defer repo.Free()

	report, err := repoinfo.Collect(ctx, repo, opts)
	if err != nil {
		return errorResult(err)
	}

	s.deps.Logger.InfoContext(ctx, "repo summary served",
		"repo", report.Name, "commits", report.Commits, "warnings", len(report.Warnings))

	return jsonResult(report)
}

func validateRepoSummaryInput(input RepoSummaryInput) error {
	if input.RepoPath == "" {
		return ErrEmptyRepoPath
	}

	if !filepath.IsAbs(input.RepoPath) {
		return ErrRepoPathNotAbsolute
	}

	if input.ContributorsLimit < 0 || input.TopLanguages < 0 {
		return ErrNegativeLimit
	}

	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRepoNotFound, input.RepoPath)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRepoNotFound, input.RepoPath)
	}

	return nil
}

func errorResult(err error) (*mcpsdk.CallToolResult, any, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
		IsError: true,
	}, nil, nil
}

func jsonResult(value any) (*mcpsdk.CallToolResult, any, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil, nil
}
