// Package gittest builds throwaway libgit2 repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/require"
)

// Default author used by Commit.
const (
	DefaultAuthor = "Test User"
	DefaultEmail  = "test@example.com"
)

// Repo is a temporary repository with a working directory.
type Repo struct {
	t      *testing.T
	Path   string
	Native *git2go.Repository
}

// New initializes an empty repository in a temp dir whose HEAD points to the
// unborn branch "trunk". The repository is freed when the test ends.
func New(t *testing.T) *Repo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	require.NoError(t, repo.SetHead("refs/heads/trunk"))

	t.Cleanup(repo.Free)

	return &Repo{t: t, Path: dir, Native: repo}
}

// WriteFile creates or replaces a file in the working directory.
func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.Path, name)

	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// Commit stages everything and commits it as DefaultAuthor at when.
func (r *Repo) Commit(message string, when time.Time) *git2go.Oid {
	r.t.Helper()

	return r.CommitAs(DefaultAuthor, DefaultEmail, message, when)
}

// CommitAs stages everything and commits it with the given author at when.
// The committer is the author.
func (r *Repo) CommitAs(name, email, message string, when time.Time) *git2go.Oid {
	r.t.Helper()

	index, err := r.Native.Index()
	require.NoError(r.t, err)

	defer index.Free()

	require.NoError(r.t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(r.t, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(r.t, err)

	tree, err := r.Native.LookupTree(treeID)
	require.NoError(r.t, err)

	defer tree.Free()

	sig := &git2go.Signature{Name: name, Email: email, When: when}

	var parents []*git2go.Commit

	head, err := r.Native.Head()
	if err == nil {
		headCommit, lookupErr := r.Native.LookupCommit(head.Target())
		require.NoError(r.t, lookupErr)

		parents = append(parents, headCommit)

		head.Free()
	}

	oid, err := r.Native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(r.t, err)

	for _, parent := range parents {
		parent.Free()
	}

	return oid
}

// Detach points HEAD directly at oid.
func (r *Repo) Detach(oid *git2go.Oid) {
	r.t.Helper()

	require.NoError(r.t, r.Native.SetHeadDetached(oid))
}
