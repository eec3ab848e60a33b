package activity

import (
	"io"
	"time"
)

// CommitRecord is the part of a commit the calendar cares about.
type CommitRecord struct {
	ID     string
	Author string
	Email  string
	When   time.Time
}

// Source yields commit records one at a time. Next returns [io.EOF] once the
// history is exhausted; any other error ends the traversal.
type Source interface {
	Next() (CommitRecord, error)
}

// SliceSource serves records from memory.
type SliceSource struct {
	records []CommitRecord
	pos     int
}

// NewSliceSource creates a Source over the given records.
func NewSliceSource(records ...CommitRecord) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record or [io.EOF].
func (s *SliceSource) Next() (CommitRecord, error) {
	if s.pos >= len(s.records) {
		return CommitRecord{}, io.EOF
	}

	rec := s.records[s.pos]
	s.pos++

	return rec, nil
}

// emptySource is used when no history is available.
type emptySource struct{}

func (emptySource) Next() (CommitRecord, error) {
	return CommitRecord{}, io.EOF
}

// EmptySource returns a Source with no commits.
func EmptySource() Source {
	return emptySource{}
}
