package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasteworks/wasteworks-api/internal/domain/report"
)

// stubRepository counts fetches so tests can see whether the cache short-circuits.
type stubRepository struct {
	points    []report.PointsRow
	scores    []report.ScoreRow
	penalties []report.PenaltyRow
	fetches   int
}

func (s *stubRepository) PointsRows(context.Context) ([]report.PointsRow, error) {
	s.fetches++
	return s.points, nil
}

func (s *stubRepository) ScoreRows(context.Context) ([]report.ScoreRow, error) {
	s.fetches++
	return s.scores, nil
}

func (s *stubRepository) PenaltyRows(context.Context) ([]report.PenaltyRow, error) {
	s.fetches++
	return s.penalties, nil
}

func TestServiceWithoutCache(t *testing.T) {
	repo := &stubRepository{
		points: []report.PointsRow{{Awarded: 30, Redeemed: 10}},
		scores: []report.ScoreRow{{Ward: "north", Score: 95}, {Ward: "north", Score: 40}},
	}
	// A nil Redis client disables caching entirely.
	svc := report.NewService(repo, report.NewCache(nil, 0))
	ctx := context.Background()

	points, err := svc.Points(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), points.InCirculation)

	dist, err := svc.Compliance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dist.Excellent.Count)
	assert.Equal(t, 1, dist.Poor.Count)

	board, err := svc.Wards(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.InDelta(t, 67.5, board[0].AverageScore, 0.001)

	// Every call hits the repository when caching is off.
	assert.Equal(t, 3, repo.fetches)
}
