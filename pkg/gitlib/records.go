package gitlib

import (
	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

// recordSource adapts a CommitIter to activity.Source.
type recordSource struct {
	iter *CommitIter
}

// Records exposes the iterator as a stream of commit records. The returned
// source consumes the iterator.
func (ci *CommitIter) Records() activity.Source {
	return &recordSource{iter: ci}
}

func (s *recordSource) Next() (activity.CommitRecord, error) {
	commit, err := s.iter.Next()
	if err != nil {
		return activity.CommitRecord{}, err
	}
	defer commit.Free()

	author := commit.Author()

	// Commit time, not author time, places a commit on the calendar.
	return activity.CommitRecord{
		ID:     commit.ID(),
		Author: author.Name,
		Email:  author.Email,
		When:   commit.Committer().When,
	}, nil
}
