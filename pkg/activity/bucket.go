package activity

import (
	"context"
	"errors"
	"io"
	"time"
)

// Representable commit years. Anything outside is treated as a corrupt timestamp.
const (
	minCommitYear = 1
	maxCommitYear = 9999
)

// Buckets maps a calendar date to the number of commits made on it.
type Buckets map[Date]int

// BucketStats describes what happened to the scanned commits.
type BucketStats struct {
	Scanned     int
	Counted     int
	OutOfWindow int
	Skipped     int

	// SourceErr is the error that ended the traversal early, if any. The
	// buckets still hold everything counted before it.
	SourceErr error
}

// Bucketize counts every commit from src whose local date in loc falls within
// win. The whole source is consumed; there is no cap on the number of commits.
// Commits with unrepresentable timestamps are skipped. A failing source or a
// canceled context stops the scan and keeps the partial result.
func Bucketize(ctx context.Context, src Source, win Window, loc *time.Location) (Buckets, BucketStats) {
	buckets := Buckets{}

	var stats BucketStats

	if src == nil {
		return buckets, stats
	}

	for {
		if err := ctx.Err(); err != nil {
			stats.SourceErr = err

			break
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			stats.SourceErr = err

			break
		}

		stats.Scanned++

		if !representable(rec.When) {
			stats.Skipped++

			continue
		}

		date := DateOf(rec.When, loc)
		if !win.Contains(date) {
			stats.OutOfWindow++

			continue
		}

		buckets[date]++
		stats.Counted++
	}

	return buckets, stats
}

func representable(t time.Time) bool {
	if t.IsZero() {
		return false
	}

	year := t.UTC().Year()

	return year >= minCommitYear && year <= maxCommitYear
}

// Count returns the bucket value for d.
func (b Buckets) Count(d Date) int {
	return b[d]
}
