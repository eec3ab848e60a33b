// Package pathfilter decides which files and directories a repository walk visits.
package pathfilter

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ErrInvalidPattern is returned for malformed exclude patterns.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// Options configures a Filter.
type Options struct {
	// Exclude holds doublestar patterns. A pattern without a slash is matched
	// against the entry name, otherwise against the slash-separated path
	// relative to the root.
	Exclude []string
	// SkipHidden drops entries whose name starts with a dot.
	SkipHidden bool
	// Gitignore honors the .gitignore file at the root, when present.
	Gitignore bool
}

// Filter matches relative paths against the configured rules.
type Filter struct {
	exclude    []string
	skipHidden bool
	gitignore  *ignore.GitIgnore
}

// New validates the options and loads the root .gitignore if requested.
func New(root string, opts Options) (*Filter, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	f := &Filter{exclude: opts.Exclude, skipHidden: opts.SkipHidden}

	if !opts.Gitignore {
		return f, nil
	}

	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}

	f.gitignore = gi

	return f, nil
}

// Skip reports whether the entry at rel (slash-separated, relative to the
// root) should not be visited.
func (f *Filter) Skip(rel string, isDir bool) bool {
	name := path.Base(rel)

	if f.skipHidden && strings.HasPrefix(name, ".") {
		return true
	}

	for _, pattern := range f.exclude {
		subject := name
		if strings.Contains(pattern, "/") {
			subject = rel
		}

		if ok, _ := doublestar.PathMatch(pattern, subject); ok {
			return true
		}
	}

	if f.gitignore == nil {
		return false
	}

	if isDir {
		return f.gitignore.MatchesPath(rel + "/")
	}

	return f.gitignore.MatchesPath(rel)
}
