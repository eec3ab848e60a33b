package contributors_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
	"github.com/Sumatoshi-tech/gitpulse/pkg/contributors"
)

func records(authors ...string) []activity.CommitRecord {
	out := make([]activity.CommitRecord, len(authors))
	for i, a := range authors {
		out[i] = activity.CommitRecord{Author: a, When: time.Unix(int64(i), 0)}
	}

	return out
}

func TestRank_OrdersByCommitsThenName(t *testing.T) {
	t.Parallel()

	src := activity.NewSliceSource(records("bob", "alice", "bob", "carol", "alice", "bob", "dave")...)

	ranking, err := contributors.Rank(context.Background(), src, 0)
	require.NoError(t, err)

	assert.Equal(t, contributors.Ranking{
		{Name: "bob", Commits: 3},
		{Name: "alice", Commits: 2},
		{Name: "carol", Commits: 1},
		{Name: "dave", Commits: 1},
	}, ranking)
	assert.Equal(t, 7, ranking.Total())
}

func TestRank_RespectsScanLimit(t *testing.T) {
	t.Parallel()

	authors := make([]string, 0, 1500)
	for range 1500 {
		authors = append(authors, "prolific")
	}

	ranking, err := contributors.Rank(context.Background(), activity.NewSliceSource(records(authors...)...), contributors.DefaultScanLimit)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, contributors.DefaultScanLimit, ranking[0].Commits)
}

func TestRank_UnknownAuthor(t *testing.T) {
	t.Parallel()

	ranking, err := contributors.Rank(context.Background(), activity.NewSliceSource(records("", "  ")...), 0)
	require.NoError(t, err)
	assert.Equal(t, contributors.Ranking{{Name: contributors.UnknownAuthor, Commits: 2}}, ranking)
}

type brokenSource struct{ served bool }

var errBroken = errors.New("broken")

func (b *brokenSource) Next() (activity.CommitRecord, error) {
	if b.served {
		return activity.CommitRecord{}, errBroken
	}

	b.served = true

	return activity.CommitRecord{Author: "solo"}, nil
}

func TestRank_SourceErrorKeepsPartialRanking(t *testing.T) {
	t.Parallel()

	ranking, err := contributors.Rank(context.Background(), &brokenSource{}, 0)
	require.ErrorIs(t, err, errBroken)
	assert.Equal(t, contributors.Ranking{{Name: "solo", Commits: 1}}, ranking)
}

func TestRanking_Top(t *testing.T) {
	t.Parallel()

	r := contributors.Ranking{{Name: "a", Commits: 3}, {Name: "b", Commits: 2}, {Name: "c", Commits: 1}}

	assert.Len(t, r.Top(2), 2)
	assert.Len(t, r.Top(10), 3)
	assert.Len(t, r.Top(-1), 3)
	assert.Empty(t, r.Top(0))
}
