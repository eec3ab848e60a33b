// Package contributors ranks commit authors.
package contributors

import (
	"cmp"
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

// DefaultScanLimit caps how many commits Rank reads. Ranking is a rough
// signal, so it trades completeness for speed on long histories; the
// activity calendar has no such cap.
const DefaultScanLimit = 1000

// UnknownAuthor names commits without an author name.
const UnknownAuthor = "Unknown"

// Contributor is an author and their commit count within the scanned commits.
type Contributor struct {
	Name    string `json:"name"    yaml:"name"`
	Commits int    `json:"commits" yaml:"commits"`
}

// Ranking is a list of contributors, most active first.
type Ranking []Contributor

// Rank reads at most limit commits from src (limit <= 0 reads everything) and
// ranks their authors by commit count, breaking ties by name. A source error
// ends the scan; what was read so far is still ranked and the error returned.
func Rank(ctx context.Context, src activity.Source, limit int) (Ranking, error) {
	counts := map[string]int{}

	var scanErr error

	for scanned := 0; limit <= 0 || scanned < limit; scanned++ {
		if err := ctx.Err(); err != nil {
			scanErr = err

			break
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			scanErr = err

			break
		}

		name := strings.TrimSpace(rec.Author)
		if name == "" {
			name = UnknownAuthor
		}

		counts[name]++
	}

	ranking := lo.MapToSlice(counts, func(name string, commits int) Contributor {
		return Contributor{Name: name, Commits: commits}
	})

	slices.SortFunc(ranking, func(a, b Contributor) int {
		if c := cmp.Compare(b.Commits, a.Commits); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return ranking, scanErr
}

// Top returns the first n contributors.
func (r Ranking) Top(n int) Ranking {
	if n < 0 || n >= len(r) {
		return r
	}

	return r[:n]
}

// Total returns the number of commits attributed across the ranking.
func (r Ranking) Total() int {
	return lo.SumBy(r, func(c Contributor) int { return c.Commits })
}
