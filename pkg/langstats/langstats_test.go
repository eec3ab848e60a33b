package langstats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/langstats"
	"github.com/Sumatoshi-tech/gitpulse/pkg/pathfilter"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

const goSource = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

const pySource = "def main():\n    print('hi')\n"

func TestCountLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single terminated", "a\n", 1},
		{"partial last line", "a\nb", 2},
		{"blank lines", "\n\n\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langstats.CountLines([]byte(tt.in)))
		})
	}
}

func TestScan_GroupsAndSorts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", goSource)
	writeFile(t, root, "internal/util.go", goSource)
	writeFile(t, root, "app/tool.py", pySource)

	stats, err := langstats.Scan(context.Background(), root, langstats.Options{})
	require.NoError(t, err)
	require.Len(t, stats.Languages, 2)

	assert.Equal(t, langstats.Language{Name: "Go", Files: 2, Lines: 10, Color: "#00ADD8"}, stats.Languages[0])
	assert.Equal(t, "Python", stats.Languages[1].Name)
	assert.Equal(t, 2, stats.Languages[1].Lines)
	assert.Equal(t, 12, stats.TotalLines())
}

func TestScan_SkipsHiddenAndExcluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", goSource)
	writeFile(t, root, ".hidden/secret.go", goSource)
	writeFile(t, root, "target/build.go", goSource)
	writeFile(t, root, "node_modules/dep/index.py", pySource)

	stats, err := langstats.Scan(context.Background(), root, langstats.Options{})
	require.NoError(t, err)
	require.Len(t, stats.Languages, 1)
	assert.Equal(t, 1, stats.Languages[0].Files)
}

func TestScan_DropsProseAndData(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "README.md", "# title\n\ntext\n")
	writeFile(t, root, "config.json", "{\"a\": 1}\n")

	stats, err := langstats.Scan(context.Background(), root, langstats.Options{})
	require.NoError(t, err)
	assert.Empty(t, stats.Languages)
	assert.Equal(t, 2, stats.Skipped)
}

func TestScan_Gitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n")
	writeFile(t, root, "main.go", goSource)
	writeFile(t, root, "generated/api.go", goSource)

	withIgnore, err := langstats.Scan(context.Background(), root, langstats.Options{Gitignore: true})
	require.NoError(t, err)
	require.Len(t, withIgnore.Languages, 1)
	assert.Equal(t, 1, withIgnore.Languages[0].Files)

	without, err := langstats.Scan(context.Background(), root, langstats.Options{})
	require.NoError(t, err)
	require.Len(t, without.Languages, 1)
	assert.Equal(t, 2, without.Languages[0].Files)
}

func TestScan_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := langstats.Scan(context.Background(), t.TempDir(), langstats.Options{Exclude: []string{"[broken"}})
	require.ErrorIs(t, err, pathfilter.ErrInvalidPattern)
}

func TestScan_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := langstats.Scan(ctx, t.TempDir(), langstats.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStats_Top(t *testing.T) {
	t.Parallel()

	stats := &langstats.Stats{Languages: []langstats.Language{{Name: "A"}, {Name: "B"}, {Name: "C"}}}

	assert.Len(t, stats.Top(2), 2)
	assert.Len(t, stats.Top(10), 3)
	assert.Len(t, stats.Top(0), 3)

	var empty *langstats.Stats
	assert.Nil(t, empty.Top(5))
	assert.Zero(t, empty.TotalLines())
}

func TestColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#DEA584", langstats.Color("Rust"))
	assert.Empty(t, langstats.Color("Brainfuck"))
}
