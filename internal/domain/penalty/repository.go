package penalty

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const queryTimeout = 3 * time.Second

const penaltyColumns = `id, account_id, violation_type, amount, description, status,
	issued_by, issued_at, due_date, paid_at, paid_amount, payment_method, cancel_reason`

type Repository interface {
	Insert(ctx context.Context, p *PenaltyRecord) error
	Get(ctx context.Context, id uuid.UUID) (*PenaltyRecord, error)

	// Pay transitions issued -> paid exactly once; the status check and the
	// payment write are a single conditional update.
	Pay(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, method string, paidAt time.Time) (*PenaltyRecord, error)

	// Cancel transitions issued -> cancelled.
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*PenaltyRecord, error)

	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]PenaltyRecord, error)
	List(ctx context.Context, status *Status, limit, offset int) ([]PenaltyRecord, error)
}

// PostgresRepository provides penalty storage on Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, p *PenaltyRecord) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO penalties (id, account_id, violation_type, amount, description, status, issued_by, issued_at, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.AccountID, p.ViolationType, p.Amount, p.Description, p.Status, p.IssuedBy, p.IssuedAt, p.DueDate)
	if err != nil {
		return fmt.Errorf("%w: insert penalty", ErrInternal)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*PenaltyRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.get(ctx2, id)
}

func (r *PostgresRepository) get(ctx context.Context, id uuid.UUID) (*PenaltyRecord, error) {
	var p PenaltyRecord
	err := r.db.GetContext(ctx, &p, `SELECT `+penaltyColumns+` FROM penalties WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get penalty", ErrInternal)
	}
	return &p, nil
}

func (r *PostgresRepository) Pay(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, method string, paidAt time.Time) (*PenaltyRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p PenaltyRecord
	err := r.db.GetContext(ctx2, &p, `
		UPDATE penalties
		SET status = 'paid', paid_at = $3, paid_amount = $2, payment_method = $4
		WHERE id = $1 AND status = 'issued' AND amount <= $2
		RETURNING `+penaltyColumns+`
	`, id, paidAmount, paidAt, method)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: pay penalty", ErrInternal)
	}

	// The conditional update missed: classify against the current record.
	cur, err := r.get(ctx2, id)
	if err != nil {
		return nil, err
	}
	switch cur.Status {
	case StatusPaid:
		return nil, ErrAlreadyPaid
	case StatusCancelled:
		return nil, ErrCancelled
	default:
		return nil, &InsufficientPaymentError{Required: cur.Amount, Received: paidAmount}
	}
}

func (r *PostgresRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) (*PenaltyRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p PenaltyRecord
	err := r.db.GetContext(ctx2, &p, `
		UPDATE penalties
		SET status = 'cancelled', cancel_reason = $2
		WHERE id = $1 AND status = 'issued'
		RETURNING `+penaltyColumns+`
	`, id, reason)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: cancel penalty", ErrInternal)
	}

	cur, err := r.get(ctx2, id)
	if err != nil {
		return nil, err
	}
	switch cur.Status {
	case StatusPaid:
		return nil, ErrAlreadyPaid
	default:
		return nil, ErrCancelled
	}
}

func (r *PostgresRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]PenaltyRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	penalties := make([]PenaltyRecord, 0)
	err := r.db.SelectContext(ctx2, &penalties, `
		SELECT `+penaltyColumns+`
		FROM penalties
		WHERE account_id = $1
		ORDER BY issued_at DESC
		LIMIT $2 OFFSET $3
	`, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list penalties", ErrInternal)
	}

	return penalties, nil
}

func (r *PostgresRepository) List(ctx context.Context, status *Status, limit, offset int) ([]PenaltyRecord, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}

	base := `SELECT ` + penaltyColumns + ` FROM penalties WHERE 1=1`
	args := make([]interface{}, 0, 3)
	idx := 1

	if status != nil && *status != "" {
		base += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, *status)
		idx++
	}

	base += fmt.Sprintf(" ORDER BY issued_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	penalties := make([]PenaltyRecord, 0)
	if err := r.db.SelectContext(ctx2, &penalties, base, args...); err != nil {
		return nil, fmt.Errorf("%w: list penalties", ErrInternal)
	}

	return penalties, nil
}
