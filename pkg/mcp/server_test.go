package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib/gittest"
	"github.com/Sumatoshi-tech/gitpulse/pkg/mcp"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func connect(t *testing.T) (*mcpsdk.ClientSession, context.Context) {
	t.Helper()

	defaults := repoinfo.DefaultOptions()
	defaults.Now = now
	defaults.Location = time.UTC

	srv := mcp.NewServer(mcp.ServerDeps{Defaults: defaults})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()

		cancel()
		<-serverDone
	})

	return session, ctx
}

func callSummary(t *testing.T, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()

	session, ctx := connect(t)

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{Name: mcp.ToolNameRepoSummary, Arguments: args})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	return result
}

func resultText(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestServer_ListToolNames(t *testing.T) {
	t.Parallel()

	srv := mcp.NewServer(mcp.ServerDeps{})
	assert.Equal(t, []string{mcp.ToolNameRepoSummary}, srv.ListToolNames())
}

func TestServer_ToolsList(t *testing.T) {
	t.Parallel()

	session, ctx := connect(t)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 1)

	assert.Equal(t, mcp.ToolNameRepoSummary, tools.Tools[0].Name)
	assert.NotNil(t, tools.Tools[0].InputSchema)
}

func TestRepoSummary(t *testing.T) {
	t.Parallel()

	fixture := gittest.New(t)
	fixture.WriteFile("main.go", "package main\n")
	fixture.CommitAs("Ada", "ada@example.com", "initial", now.Add(-time.Hour))
	fixture.WriteFile("lib.go", "package main\n")
	fixture.CommitAs("Grace", "grace@example.com", "lib", now.Add(-30*time.Minute))

	result := callSummary(t, map[string]any{"repo_path": fixture.Path, "contributors_limit": 1})
	require.False(t, result.IsError, resultText(t, result))

	var report struct {
		Branch   string `json:"branch"`
		Commits  int    `json:"commits"`
		Authors  []struct {
			Name    string `json:"name"`
			Commits int    `json:"commits"`
		} `json:"authors"`
		Activity struct {
			Summary struct {
				TotalCommits int `json:"total_commits"`
			} `json:"summary"`
		} `json:"activity"`
	}

	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))

	assert.Equal(t, "trunk", report.Branch)
	assert.Equal(t, 2, report.Commits)
	require.Len(t, report.Authors, 1)
	assert.Equal(t, "Grace", report.Authors[0].Name)
	assert.Equal(t, 2, report.Activity.Summary.TotalCommits)
}

func TestRepoSummary_InvalidInput(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"empty path", map[string]any{"repo_path": ""}, mcp.ErrEmptyRepoPath.Error()},
		{"relative path", map[string]any{"repo_path": "some/repo"}, mcp.ErrRepoPathNotAbsolute.Error()},
		{"missing path", map[string]any{"repo_path": filepath.Join(t.TempDir(), "gone")}, mcp.ErrRepoNotFound.Error()},
		{"file path", map[string]any{"repo_path": file}, "is not a directory"},
		{"not a repository", map[string]any{"repo_path": t.TempDir()}, mcp.ErrNotGitRepo.Error()},
		{"negative limit", map[string]any{"repo_path": t.TempDir(), "top_languages": -1}, mcp.ErrNegativeLimit.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := callSummary(t, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}
