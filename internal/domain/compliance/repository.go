package compliance

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
	// AdjustScore applies a clamped delta to the account score atomically.
	AdjustScore(ctx context.Context, accountID uuid.UUID, delta int) (newScore int, err error)

	// ApplyViolation appends the violation and applies its QualityDelta to
	// the score in a single transaction.
	ApplyViolation(ctx context.Context, v *ViolationRecord) (newScore int, err error)

	// ApplyAssessment sets the score absolutely and appends the assessment
	// in a single transaction.
	ApplyAssessment(ctx context.Context, a *AssessmentRecord) (newScore int, err error)

	ListViolations(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ViolationRecord, error)
	LastAssessments(ctx context.Context, accountID uuid.UUID, n int) ([]AssessmentRecord, error)
}

// PostgresRepository provides compliance storage on Postgres. Score clamping
// happens inside the UPDATE statement, so concurrent score changes serialize
// on the account row and can never escape [0,100].
type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AdjustScore(ctx context.Context, accountID uuid.UUID, delta int) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var newScore int
	err := r.db.QueryRowContext(ctx2, `
		UPDATE accounts
		SET compliance_score = LEAST(100, GREATEST(0, compliance_score + $2)), updated_at = now()
		WHERE id = $1
		RETURNING compliance_score
	`, accountID, delta).Scan(&newScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("%w: adjust score", ErrInternal)
	}

	return newScore, nil
}

func (r *PostgresRepository) ApplyViolation(ctx context.Context, v *ViolationRecord) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var newScore int
	err = tx.QueryRowContext(ctx2, `
		UPDATE accounts
		SET compliance_score = LEAST(100, GREATEST(0, compliance_score + $2)), updated_at = now()
		WHERE id = $1
		RETURNING compliance_score
	`, v.AccountID, v.QualityDelta).Scan(&newScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("%w: adjust score", ErrInternal)
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO violations (id, account_id, violation_type, severity, quality_delta, notes, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, v.ID, v.AccountID, v.ViolationType, v.Severity, v.QualityDelta, v.Notes, v.RecordedBy, v.RecordedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: insert violation", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return newScore, nil
}

func (r *PostgresRepository) ApplyAssessment(ctx context.Context, a *AssessmentRecord) (int, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	var newScore int
	err = tx.QueryRowContext(ctx2, `
		UPDATE accounts
		SET compliance_score = LEAST(100, GREATEST(0, $2)), updated_at = now()
		WHERE id = $1
		RETURNING compliance_score
	`, a.AccountID, a.OverallScore).Scan(&newScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, fmt.Errorf("%w: set score", ErrInternal)
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO assessments (id, account_id, overall_score, assessed_by, assessed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.AccountID, a.OverallScore, a.AssessedBy, a.AssessedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: insert assessment", ErrInternal)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx", ErrInternal)
	}

	return newScore, nil
}

func (r *PostgresRepository) ListViolations(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ViolationRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	violations := make([]ViolationRecord, 0)
	err := r.db.SelectContext(ctx2, &violations, `
		SELECT id, account_id, violation_type, severity, quality_delta, notes, recorded_by, recorded_at
		FROM violations
		WHERE account_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list violations", ErrInternal)
	}

	return violations, nil
}

func (r *PostgresRepository) LastAssessments(ctx context.Context, accountID uuid.UUID, n int) ([]AssessmentRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	assessments := make([]AssessmentRecord, 0)
	err := r.db.SelectContext(ctx2, &assessments, `
		SELECT id, account_id, overall_score, assessed_by, assessed_at
		FROM assessments
		WHERE account_id = $1
		ORDER BY assessed_at DESC
		LIMIT $2
	`, accountID, n)
	if err != nil {
		return nil, fmt.Errorf("%w: list assessments", ErrInternal)
	}

	return assessments, nil
}
