package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	// Award atomically increments the account balance and appends the event.
	Award(ctx context.Context, ev *RewardEvent) (newBalance int, err error)

	// Redeem atomically decrements the balance if sufficient and appends the
	// event. Two concurrent redemptions never both succeed past zero.
	Redeem(ctx context.Context, ev *RedemptionEvent) (previousBalance, newBalance int, err error)

	ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Transaction, error)
}

// PostgresRepository provides the points ledger on Postgres. Balance checks
// ride on single-statement conditional updates, so per-account mutations are
// serialized by the database without explicit locks.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Award(ctx context.Context, ev *RewardEvent) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var newBalance int
	err = tx.QueryRowContext(ctx2, `
		UPDATE accounts
		SET point_balance = point_balance + $2, updated_at = now()
		WHERE id = $1 AND status = 'active'
		RETURNING point_balance
	`, ev.AccountID, ev.PointsAwarded).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, r.classifyMissing(ctx2, ev.AccountID)
		}
		return 0, fmt.Errorf("%w: update balance", ErrInternal)
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO reward_events (
			id, account_id, points_awarded, quantity_kg, quality_grade,
			segregation_score, reason, awarded_by, awarded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, ev.ID, ev.AccountID, ev.PointsAwarded, ev.QuantityKg, ev.QualityGrade,
		ev.SegregationScore, ev.Reason, ev.AwardedBy, ev.AwardedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: insert reward event", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return newBalance, nil
}

func (r *PostgresRepository) Redeem(ctx context.Context, ev *RedemptionEvent) (int, int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var newBalance int
	err = tx.QueryRowContext(ctx2, `
		UPDATE accounts
		SET point_balance = point_balance - $2, updated_at = now()
		WHERE id = $1 AND status = 'active' AND point_balance >= $2
		RETURNING point_balance
	`, ev.AccountID, ev.PointsRedeemed).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, r.classifyShortfall(ctx2, ev.AccountID, ev.PointsRedeemed)
		}
		return 0, 0, fmt.Errorf("%w: update balance", ErrInternal)
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO redemption_events (
			id, account_id, points_redeemed, reward_type, reward_value, description, redeemed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ev.ID, ev.AccountID, ev.PointsRedeemed, ev.RewardType, ev.RewardValue, ev.Description, ev.RedeemedAt)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: insert redemption event", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return newBalance + ev.PointsRedeemed, newBalance, nil
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Transaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	transactions := make([]Transaction, 0)
	err := r.db.SelectContext(ctx2, &transactions, `
		SELECT id, account_id, 'award' AS entry_type, points_awarded AS points_delta,
		       reason AS description, awarded_at AS occurred_at
		FROM reward_events
		WHERE account_id = $1
		UNION ALL
		SELECT id, account_id, 'redemption' AS entry_type, -points_redeemed AS points_delta,
		       description, redeemed_at AS occurred_at
		FROM redemption_events
		WHERE account_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions", ErrInternal)
	}

	return transactions, nil
}

// classifyMissing resolves why a conditional balance update matched no rows
// when no balance check was involved.
func (r *PostgresRepository) classifyMissing(ctx context.Context, accountID uuid.UUID) error {
	var status string
	err := r.db.GetContext(ctx, &status, `SELECT status FROM accounts WHERE id = $1`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: classify account", ErrInternal)
	}
	return ErrAccountSuspended
}

// classifyShortfall resolves a failed conditional deduction into not-found,
// suspended, or insufficient-points with the balance observed at call time.
func (r *PostgresRepository) classifyShortfall(ctx context.Context, accountID uuid.UUID, requested int) error {
	var row struct {
		Balance int    `db:"point_balance"`
		Status  string `db:"status"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT point_balance, status FROM accounts WHERE id = $1`, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: classify account", ErrInternal)
	}
	if row.Status != "active" {
		return ErrAccountSuspended
	}
	return &InsufficientPointsError{Available: row.Balance, Requested: requested}
}
