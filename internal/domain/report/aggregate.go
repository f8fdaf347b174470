package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PointsRow is one account's lifetime award/redeem totals.
type PointsRow struct {
	Awarded  int64 `db:"awarded"`
	Redeemed int64 `db:"redeemed"`
}

// ScoreRow is one account's ward and current compliance score.
type ScoreRow struct {
	Ward  string `db:"ward"`
	Score int    `db:"compliance_score"`
}

// PenaltyRow is the reporting projection of a penalty record.
type PenaltyRow struct {
	Status     string              `db:"status"`
	Amount     decimal.Decimal     `db:"amount"`
	PaidAmount decimal.NullDecimal `db:"paid_amount"`
	DueDate    time.Time           `db:"due_date"`
}

type PointsSummary struct {
	TotalAwarded  int64 `json:"total_awarded"`
	TotalRedeemed int64 `json:"total_redeemed"`
	InCirculation int64 `json:"in_circulation"`
}

type Bucket struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type ComplianceDistribution struct {
	TotalAccounts int    `json:"total_accounts"`
	Excellent     Bucket `json:"excellent"`
	Good          Bucket `json:"good"`
	Average       Bucket `json:"average"`
	Poor          Bucket `json:"poor"`
}

type PenaltySummary struct {
	IssuedCount     int             `json:"issued_count"`
	PaidCount       int             `json:"paid_count"`
	CancelledCount  int             `json:"cancelled_count"`
	OverdueCount    int             `json:"overdue_count"`
	IssuedAmount    decimal.Decimal `json:"issued_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	CollectionRate  float64         `json:"collection_rate"`
}

type WardScore struct {
	Ward         string  `json:"ward"`
	AverageScore float64 `json:"average_score"`
	Accounts     int     `json:"accounts"`
}

// SummarizePoints derives circulation from the event totals. InCirculation
// is always awarded minus redeemed, never a stored counter.
func SummarizePoints(rows []PointsRow) PointsSummary {
	var s PointsSummary
	for _, r := range rows {
		s.TotalAwarded += r.Awarded
		s.TotalRedeemed += r.Redeemed
	}
	s.InCirculation = s.TotalAwarded - s.TotalRedeemed
	return s
}

// DistributeCompliance buckets scores: excellent >=90, good 70-89,
// average 50-69, poor <50.
func DistributeCompliance(rows []ScoreRow) ComplianceDistribution {
	d := ComplianceDistribution{TotalAccounts: len(rows)}
	for _, r := range rows {
		switch {
		case r.Score >= 90:
			d.Excellent.Count++
		case r.Score >= 70:
			d.Good.Count++
		case r.Score >= 50:
			d.Average.Count++
		default:
			d.Poor.Count++
		}
	}
	if d.TotalAccounts > 0 {
		total := float64(d.TotalAccounts)
		d.Excellent.Percent = float64(d.Excellent.Count) / total * 100
		d.Good.Percent = float64(d.Good.Count) / total * 100
		d.Average.Percent = float64(d.Average.Count) / total * 100
		d.Poor.Percent = float64(d.Poor.Count) / total * 100
	}
	return d
}

// SummarizePenalties counts lifecycle states at the given instant.
// Overdue penalties stay counted under issued as well, since overdue is a
// view of an issued penalty, not a separate stored state.
func SummarizePenalties(rows []PenaltyRow, now time.Time) PenaltySummary {
	s := PenaltySummary{
		IssuedAmount:    decimal.Zero,
		CollectedAmount: decimal.Zero,
	}
	for _, r := range rows {
		switch r.Status {
		case "issued":
			s.IssuedCount++
			s.IssuedAmount = s.IssuedAmount.Add(r.Amount)
			if now.After(r.DueDate) {
				s.OverdueCount++
			}
		case "paid":
			s.PaidCount++
			s.IssuedAmount = s.IssuedAmount.Add(r.Amount)
			if r.PaidAmount.Valid {
				s.CollectedAmount = s.CollectedAmount.Add(r.PaidAmount.Decimal)
			}
		case "cancelled":
			s.CancelledCount++
		}
	}
	if denominator := s.IssuedCount + s.PaidCount; denominator > 0 {
		s.CollectionRate = float64(s.PaidCount) / float64(denominator)
	}
	return s
}

// WardLeaderboard ranks wards by mean compliance score, descending. Ties
// break alphabetically so the ordering is stable.
func WardLeaderboard(rows []ScoreRow, top int) []WardScore {
	type acc struct {
		sum   int
		count int
	}
	byWard := make(map[string]*acc)
	for _, r := range rows {
		if r.Ward == "" {
			continue
		}
		a, ok := byWard[r.Ward]
		if !ok {
			a = &acc{}
			byWard[r.Ward] = a
		}
		a.sum += r.Score
		a.count++
	}

	board := make([]WardScore, 0, len(byWard))
	for ward, a := range byWard {
		board = append(board, WardScore{
			Ward:         ward,
			AverageScore: float64(a.sum) / float64(a.count),
			Accounts:     a.count,
		})
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].AverageScore != board[j].AverageScore {
			return board[i].AverageScore > board[j].AverageScore
		}
		return board[i].Ward < board[j].Ward
	})

	if top > 0 && len(board) > top {
		board = board[:top]
	}
	return board
}
