// Package langstats counts files and lines of code per language in a working tree.
package langstats

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/gitpulse/pkg/pathfilter"
)

// DefaultTop is the number of languages shown in the summary.
const DefaultTop = 5

// maxFileSize caps the bytes read per file; larger files are skipped.
const maxFileSize = 4 << 20

// DefaultExclude lists the directories the scanner never enters.
var DefaultExclude = []string{"target", "node_modules", "vendor"}

// Options configures Scan.
type Options struct {
	// Exclude holds doublestar patterns; nil means DefaultExclude.
	Exclude   []string
	Gitignore bool
}

// Language aggregates the files written in one language.
type Language struct {
	Name  string `json:"name"            yaml:"name"`
	Files int    `json:"files"           yaml:"files"`
	Lines int    `json:"lines"           yaml:"lines"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Stats is the scan result, sorted by lines descending.
type Stats struct {
	Languages []Language `json:"languages" yaml:"languages"`
	Skipped   int        `json:"-"         yaml:"-"`
}

// Scan walks root and attributes each source file to a language.
func Scan(ctx context.Context, root string, opts Options) (*Stats, error) {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	filter, err := pathfilter.New(root, pathfilter.Options{
		Exclude:    exclude,
		SkipHidden: true,
		Gitignore:  opts.Gitignore,
	})
	if err != nil {
		return nil, fmt.Errorf("language scan: %w", err)
	}

	byName := make(map[string]*Language)
	stats := &Stats{}

	walkErr := pathfilter.Walk(ctx, root, filter, func(entry pathfilter.Entry) error {
		lang, lines, ok := classify(entry)
		if !ok {
			stats.Skipped++

			return nil
		}

		agg, found := byName[lang]
		if !found {
			agg = &Language{Name: lang, Color: Color(lang)}
			byName[lang] = agg
		}

		agg.Files++
		agg.Lines += lines

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("language scan: %w", walkErr)
	}

	stats.Languages = lo.MapToSlice(byName, func(_ string, l *Language) Language { return *l })

	sort.Slice(stats.Languages, func(i, j int) bool {
		a, b := stats.Languages[i], stats.Languages[j]
		if a.Lines != b.Lines {
			return a.Lines > b.Lines
		}

		return a.Name < b.Name
	})

	return stats, nil
}

func classify(entry pathfilter.Entry) (string, int, bool) {
	if entry.Info.Size() > maxFileSize || enry.IsVendor(entry.Rel) {
		return "", 0, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil || enry.IsBinary(data) {
		return "", 0, false
	}

	lang := enry.GetLanguage(entry.Info.Name(), data)
	if lang == "" {
		return "", 0, false
	}

	switch enry.GetLanguageType(lang) {
	case enry.Programming, enry.Markup:
	default:
		return "", 0, false
	}

	return lang, CountLines(data), true
}

// CountLines counts newline-terminated lines plus a trailing partial line.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// Top returns at most n languages; n <= 0 returns all of them.
func (s *Stats) Top(n int) []Language {
	if s == nil {
		return nil
	}

	if n <= 0 || n >= len(s.Languages) {
		return s.Languages
	}

	return s.Languages[:n]
}

// TotalLines sums lines over every language.
func (s *Stats) TotalLines() int {
	if s == nil {
		return 0
	}

	return lo.SumBy(s.Languages, func(l Language) int { return l.Lines })
}
