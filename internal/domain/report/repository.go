package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 5 * time.Second

// Repository fetches reporting rows. Aggregation happens in aggregate.go,
// not in SQL, so the same numbers come out of the memory store.
type Repository interface {
	PointsRows(ctx context.Context) ([]PointsRow, error)
	ScoreRows(ctx context.Context) ([]ScoreRow, error)
	PenaltyRows(ctx context.Context) ([]PenaltyRow, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) PointsRows(ctx context.Context) ([]PointsRow, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]PointsRow, 0)
	err := r.db.SelectContext(ctx2, &rows, `
		SELECT
			COALESCE((SELECT SUM(points_awarded) FROM reward_events WHERE account_id = a.id), 0) AS awarded,
			COALESCE((SELECT SUM(points_redeemed) FROM redemption_events WHERE account_id = a.id), 0) AS redeemed
		FROM accounts a
	`)
	if err != nil {
		return nil, fmt.Errorf("report: points rows: %w", err)
	}
	return rows, nil
}

func (r *PostgresRepository) ScoreRows(ctx context.Context) ([]ScoreRow, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]ScoreRow, 0)
	err := r.db.SelectContext(ctx2, &rows, `
		SELECT ward, compliance_score
		FROM accounts
		WHERE status = 'active'
	`)
	if err != nil {
		return nil, fmt.Errorf("report: score rows: %w", err)
	}
	return rows, nil
}

func (r *PostgresRepository) PenaltyRows(ctx context.Context) ([]PenaltyRow, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]PenaltyRow, 0)
	err := r.db.SelectContext(ctx2, &rows, `
		SELECT status, amount, paid_amount, due_date
		FROM penalties
	`)
	if err != nil {
		return nil, fmt.Errorf("report: penalty rows: %w", err)
	}
	return rows, nil
}
