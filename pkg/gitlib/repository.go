// Package gitlib provides read-only access to local git history through libgit2.
package gitlib

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Fallback names used when the repository cannot tell.
const (
	UnknownName    = "unknown"
	DetachedBranch = "detached"
)

var (
	// ErrNotRepository is returned when no repository encloses the given path.
	ErrNotRepository = errors.New("not a git repository")
	// ErrEmptyHistory is returned when HEAD does not point to any commit yet.
	ErrEmptyHistory = errors.New("repository has no commits")
)

// Repository wraps a libgit2 repository.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the git repository at path.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepository(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrNotRepository, path, err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Discover opens the repository containing path, searching parent
// directories the same way the git CLI does.
func Discover(path string) (*Repository, error) {
	found, err := git2go.Discover(path, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotRepository, path, err)
	}

	return OpenRepository(found)
}

// Path returns the path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// Workdir returns the working directory, or "" for bare repositories.
func (r *Repository) Workdir() string {
	return r.repo.Workdir()
}

// Name returns the base name of the working directory.
func (r *Repository) Name() string {
	workdir := strings.TrimRight(r.Workdir(), `/\`)
	if workdir == "" {
		return UnknownName
	}

	name := filepath.Base(workdir)
	if name == "." || name == string(filepath.Separator) {
		return UnknownName
	}

	return name
}

// Branch returns the short name of the branch HEAD points to, or
// DetachedBranch when HEAD is detached or unreadable.
func (r *Repository) Branch() string {
	detached, err := r.repo.IsHeadDetached()
	if err == nil && detached {
		return DetachedBranch
	}

	ref, err := r.repo.Head()
	if err != nil {
		return r.unbornBranch()
	}
	defer ref.Free()

	if name := ref.Shorthand(); name != "" {
		return name
	}

	return DetachedBranch
}

// unbornBranch resolves the branch name of a freshly initialized repository,
// where HEAD is a symbolic ref to a branch that has no commits yet.
func (r *Repository) unbornBranch() string {
	ref, err := r.repo.References.Lookup("HEAD")
	if err != nil {
		return DetachedBranch
	}
	defer ref.Free()

	target := ref.SymbolicTarget()
	if target == "" {
		return DetachedBranch
	}

	return strings.TrimPrefix(target, "refs/heads/")
}

// Free releases the repository resources.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// LogOptions configures the commit log iteration.
type LogOptions struct {
	Since       *time.Time // Only include commits authored after this time.
	SortByTime  bool       // Newest commit first.
	FirstParent bool       // Follow only first parent (git log --first-parent).
}

// Log returns a lazy iterator over the history reachable from HEAD.
// It returns ErrEmptyHistory when HEAD is unborn.
func (r *Repository) Log(opts *LogOptions) (*CommitIter, error) {
	walk, err := r.pushHead()
	if err != nil {
		return nil, err
	}

	iter := &CommitIter{walk: walk, repo: r}

	if opts != nil {
		if opts.SortByTime {
			walk.Sorting(git2go.SortTime)
		}

		if opts.FirstParent {
			walk.SimplifyFirstParent()
		}

		iter.since = opts.Since
	}

	return iter, nil
}

// CountCommits counts every commit reachable from HEAD.
func (r *Repository) CountCommits(ctx context.Context) (int, error) {
	walk, err := r.pushHead()
	if err != nil {
		return 0, err
	}
	defer walk.Free()

	count := 0
	oid := new(git2go.Oid)

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return count, ctxErr
		}

		nextErr := walk.Next(oid)
		if git2go.IsErrorCode(nextErr, git2go.ErrorCodeIterOver) {
			return count, nil
		}

		if nextErr != nil {
			return count, fmt.Errorf("revwalk next: %w", nextErr)
		}

		count++
	}
}

func (r *Repository) pushHead() (*git2go.RevWalk, error) {
	unborn, err := r.repo.IsHeadUnborn()
	if err == nil && unborn {
		return nil, ErrEmptyHistory
	}

	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	err = walk.PushHead()
	if err != nil {
		walk.Free()

		return nil, fmt.Errorf("%w: push HEAD to revwalk: %w", ErrEmptyHistory, err)
	}

	return walk, nil
}

// Native returns the underlying libgit2 repository.
func (r *Repository) Native() *git2go.Repository {
	return r.repo
}
