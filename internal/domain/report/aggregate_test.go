package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wasteworks/wasteworks-api/internal/domain/report"
)

func TestSummarizePoints(t *testing.T) {
	rows := []report.PointsRow{
		{Awarded: 100, Redeemed: 40},
		{Awarded: 50, Redeemed: 0},
		{Awarded: 0, Redeemed: 0},
	}

	s := report.SummarizePoints(rows)

	assert.Equal(t, int64(150), s.TotalAwarded)
	assert.Equal(t, int64(40), s.TotalRedeemed)
	assert.Equal(t, int64(110), s.InCirculation)
}

func TestSummarizePointsEmpty(t *testing.T) {
	s := report.SummarizePoints(nil)
	assert.Equal(t, report.PointsSummary{}, s)
}

func TestDistributeCompliance(t *testing.T) {
	rows := []report.ScoreRow{
		{Score: 95}, {Score: 90}, // excellent
		{Score: 89}, {Score: 70}, {Score: 75}, // good
		{Score: 69}, {Score: 50}, // average
		{Score: 49}, {Score: 0}, {Score: 10}, // poor
	}

	d := report.DistributeCompliance(rows)

	assert.Equal(t, 10, d.TotalAccounts)
	assert.Equal(t, 2, d.Excellent.Count)
	assert.Equal(t, 3, d.Good.Count)
	assert.Equal(t, 2, d.Average.Count)
	assert.Equal(t, 3, d.Poor.Count)

	assert.InDelta(t, 20.0, d.Excellent.Percent, 0.001)
	assert.InDelta(t, 30.0, d.Good.Percent, 0.001)
	assert.InDelta(t, 20.0, d.Average.Percent, 0.001)
	assert.InDelta(t, 30.0, d.Poor.Percent, 0.001)
}

func TestDistributeComplianceEmpty(t *testing.T) {
	d := report.DistributeCompliance(nil)
	assert.Equal(t, 0, d.TotalAccounts)
	assert.Equal(t, 0.0, d.Excellent.Percent)
}

func TestSummarizePenalties(t *testing.T) {
	now := time.Now().UTC()
	future := now.AddDate(0, 0, 10)
	past := now.AddDate(0, 0, -10)

	rows := []report.PenaltyRow{
		{Status: "issued", Amount: decimal.NewFromInt(500), DueDate: future},
		{Status: "issued", Amount: decimal.NewFromInt(300), DueDate: past}, // overdue
		{Status: "paid", Amount: decimal.NewFromInt(200), PaidAmount: decimal.NewNullDecimal(decimal.NewFromInt(200)), DueDate: future},
		{Status: "paid", Amount: decimal.NewFromInt(100), PaidAmount: decimal.NewNullDecimal(decimal.NewFromInt(100)), DueDate: past},
		{Status: "cancelled", Amount: decimal.NewFromInt(999), DueDate: future},
	}

	s := report.SummarizePenalties(rows, now)

	assert.Equal(t, 2, s.IssuedCount)
	assert.Equal(t, 2, s.PaidCount)
	assert.Equal(t, 1, s.CancelledCount)
	assert.Equal(t, 1, s.OverdueCount)

	// Cancelled penalties are excluded from money totals.
	assert.True(t, s.IssuedAmount.Equal(decimal.NewFromInt(1100)), "issued amount = %s", s.IssuedAmount)
	assert.True(t, s.CollectedAmount.Equal(decimal.NewFromInt(300)), "collected amount = %s", s.CollectedAmount)

	// 2 paid of 4 ever issued (cancelled excluded).
	assert.InDelta(t, 0.5, s.CollectionRate, 0.001)
}

func TestSummarizePenaltiesNoPenalties(t *testing.T) {
	s := report.SummarizePenalties(nil, time.Now())
	assert.Equal(t, 0.0, s.CollectionRate)
}

func TestWardLeaderboard(t *testing.T) {
	rows := []report.ScoreRow{
		{Ward: "north", Score: 90},
		{Ward: "north", Score: 70},
		{Ward: "south", Score: 85},
		{Ward: "east", Score: 85},
		{Ward: "", Score: 100}, // no ward, excluded
	}

	board := report.WardLeaderboard(rows, 10)

	assert.Len(t, board, 3)
	// east and south tie at 85; ties break alphabetically.
	assert.Equal(t, "east", board[0].Ward)
	assert.Equal(t, "south", board[1].Ward)
	assert.Equal(t, "north", board[2].Ward)
	assert.InDelta(t, 80.0, board[2].AverageScore, 0.001)
	assert.Equal(t, 2, board[2].Accounts)
}

func TestWardLeaderboardTruncates(t *testing.T) {
	rows := []report.ScoreRow{
		{Ward: "a", Score: 10},
		{Ward: "b", Score: 20},
		{Ward: "c", Score: 30},
	}

	board := report.WardLeaderboard(rows, 2)

	assert.Len(t, board, 2)
	assert.Equal(t, "c", board[0].Ward)
}
