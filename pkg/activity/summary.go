package activity

import "fmt"

// Summary holds the aggregate activity over the window.
type Summary struct {
	TotalCommits int `json:"total_commits" yaml:"total_commits"`
	ActiveDays   int `json:"active_days"   yaml:"active_days"`
}

// Summarize totals the buckets and counts the days with at least one commit.
func Summarize(b Buckets) Summary {
	var s Summary

	for _, count := range b {
		if count <= 0 {
			continue
		}

		s.TotalCommits += count
		s.ActiveDays++
	}

	return s
}

// String renders the one-line summary printed under the calendar.
func (s Summary) String() string {
	return fmt.Sprintf("%d commits in the last year across %d days", s.TotalCommits, s.ActiveDays)
}
