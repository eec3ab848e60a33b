package gitlib_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib/gittest"
)

var base = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestOpenRepository(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)
	tr.WriteFile("a.txt", "a")
	tr.Commit("initial", base)

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	assert.Equal(t, tr.Path, repo.Path())
	assert.NotNil(t, repo.Native())
	assert.Equal(t, filepath.Base(tr.Path), repo.Name())
}

func TestOpenRepositoryNotFound(t *testing.T) {
	t.Parallel()

	repo, err := gitlib.OpenRepository(filepath.Join(t.TempDir(), "missing"))

	require.ErrorIs(t, err, gitlib.ErrNotRepository)
	assert.Nil(t, repo)
}

func TestDiscover_FromSubdirectory(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)
	tr.WriteFile("src/deep/main.go", "package main\n")
	tr.Commit("initial", base)

	repo, err := gitlib.Discover(filepath.Join(tr.Path, "src", "deep"))
	require.NoError(t, err)

	defer repo.Free()

	assert.Equal(t, filepath.Base(tr.Path), repo.Name())
}

func TestDiscover_OutsideRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "plain"), 0o755))

	_, err := gitlib.Discover(filepath.Join(dir, "plain"))
	require.ErrorIs(t, err, gitlib.ErrNotRepository)
}

func TestBranch(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	assert.Equal(t, "trunk", repo.Branch(), "unborn branch")

	tr.WriteFile("a.txt", "a")
	first := tr.Commit("initial", base)

	assert.Equal(t, "trunk", repo.Branch())

	tr.Detach(first)
	assert.Equal(t, gitlib.DetachedBranch, repo.Branch())
}

func TestLog_EmptyRepository(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	_, err = repo.Log(nil)
	require.ErrorIs(t, err, gitlib.ErrEmptyHistory)

	count, err := repo.CountCommits(context.Background())
	require.ErrorIs(t, err, gitlib.ErrEmptyHistory)
	assert.Zero(t, count)
}

func TestLog_IteratesNewestFirst(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)

	for i := range 3 {
		tr.WriteFile("a.txt", string(rune('a'+i)))
		tr.Commit("change", base.Add(time.Duration(i)*time.Hour))
	}

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	iter, err := repo.Log(&gitlib.LogOptions{SortByTime: true})
	require.NoError(t, err)

	var times []time.Time

	err = iter.ForEach(func(c *gitlib.Commit) error {
		times = append(times, c.Committer().When)
		assert.Equal(t, gittest.DefaultAuthor, c.Author().Name)
		assert.Equal(t, "change", c.Message())
		assert.Len(t, c.ID(), 40)

		return nil
	})
	require.NoError(t, err)

	require.Len(t, times, 3)
	assert.True(t, times[0].After(times[1]))
	assert.True(t, times[1].After(times[2]))

	_, err = iter.Next()
	assert.ErrorIs(t, err, io.EOF, "iterator is single-use")

	iter.Close()
}

func TestLog_Since(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)

	for i := range 4 {
		tr.WriteFile("a.txt", string(rune('a'+i)))
		tr.Commit("change", base.AddDate(0, 0, i))
	}

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	since := base.AddDate(0, 0, 2)

	iter, err := repo.Log(&gitlib.LogOptions{SortByTime: true, Since: &since})
	require.NoError(t, err)

	count := 0
	require.NoError(t, iter.ForEach(func(*gitlib.Commit) error {
		count++

		return nil
	}))

	assert.Equal(t, 2, count)
}

func TestForEach_PropagatesCallbackError(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)
	tr.WriteFile("a.txt", "a")
	tr.Commit("initial", base)

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	iter, err := repo.Log(nil)
	require.NoError(t, err)

	defer iter.Close()

	stop := errors.New("stop")
	require.ErrorIs(t, iter.ForEach(func(*gitlib.Commit) error { return stop }), stop)
}

func TestCountCommits(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)

	for i := range 5 {
		tr.WriteFile("a.txt", string(rune('a'+i)))
		tr.Commit("change", base.Add(time.Duration(i)*time.Minute))
	}

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	count, err := repo.CountCommits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestRecords(t *testing.T) {
	t.Parallel()

	tr := gittest.New(t)
	tr.WriteFile("a.txt", "a")
	tr.CommitAs("Ada", "ada@example.com", "first", base)
	tr.WriteFile("a.txt", "b")
	tr.CommitAs("Linus", "linus@example.com", "second", base.Add(time.Hour))

	repo, err := gitlib.OpenRepository(tr.Path)
	require.NoError(t, err)

	defer repo.Free()

	iter, err := repo.Log(&gitlib.LogOptions{SortByTime: true})
	require.NoError(t, err)

	src := iter.Records()

	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Linus", first.Author)
	assert.Equal(t, "linus@example.com", first.Email)
	assert.True(t, first.When.Equal(base.Add(time.Hour)))

	second, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "Ada", second.Author)

	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}
