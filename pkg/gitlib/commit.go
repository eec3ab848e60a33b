package gitlib

import (
	"errors"
	"io"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// Signature represents a git signature (author/committer).
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit wraps a libgit2 commit.
type Commit struct {
	commit *git2go.Commit
}

// ID returns the hex commit id.
func (c *Commit) ID() string {
	return c.commit.Id().String()
}

// Author returns the commit author.
func (c *Commit) Author() Signature {
	return signatureOf(c.commit.Author())
}

// Committer returns the commit committer.
func (c *Commit) Committer() Signature {
	return signatureOf(c.commit.Committer())
}

// Message returns the commit message.
func (c *Commit) Message() string {
	return c.commit.Message()
}

// Free releases the commit resources.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}

func signatureOf(sig *git2go.Signature) Signature {
	if sig == nil {
		return Signature{}
	}

	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

// CommitIter iterates over commits lazily. It is single-use.
type CommitIter struct {
	walk  *git2go.RevWalk
	repo  *Repository
	since *time.Time
}

// Next returns the next commit, or io.EOF when the walk is exhausted.
// Commits that cannot be loaded are skipped.
func (ci *CommitIter) Next() (*Commit, error) {
	if ci.walk == nil {
		return nil, io.EOF
	}

	for {
		oid := new(git2go.Oid)

		err := ci.walk.Next(oid)
		if err != nil {
			ci.Close()

			if git2go.IsErrorCode(err, git2go.ErrorCodeIterOver) {
				return nil, io.EOF
			}

			return nil, err
		}

		commit, err := ci.repo.repo.LookupCommit(oid)
		if err != nil {
			continue
		}

		if ci.since != nil && commit.Author().When.Before(*ci.since) {
			commit.Free()
			ci.Close()

			return nil, io.EOF
		}

		return &Commit{commit: commit}, nil
	}
}

// ForEach calls the callback for each commit, freeing each one afterwards.
func (ci *CommitIter) ForEach(cb func(*Commit) error) error {
	for {
		commit, err := ci.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		cbErr := cb(commit)
		commit.Free()

		if cbErr != nil {
			return cbErr
		}
	}
}

// Close releases the underlying walker. Safe to call more than once.
func (ci *CommitIter) Close() {
	if ci.walk != nil {
		ci.walk.Free()
		ci.walk = nil
	}
}
