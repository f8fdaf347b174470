package account

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

// Filter narrows account listings for reporting and admin views.
type Filter struct {
	Kind   *Kind
	Ward   *string
	Status *Status
	Limit  int
	Offset int
}

type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	Create(ctx context.Context, a *Account) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	List(ctx context.Context, filter Filter) ([]Account, error)
}

// PostgresRepository provides account storage on Postgres.
type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a Account
	err := r.db.GetContext(ctx2, &a, `
		SELECT id, kind, name, ward, point_balance, compliance_score, status, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: get account", ErrInternal)
	}

	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *Account) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO accounts (id, kind, name, ward, point_balance, compliance_score, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.Kind, a.Name, a.Ward, a.PointBalance, a.ComplianceScore, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert account", ErrInternal)
	}

	return nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		UPDATE accounts SET status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("%w: update account status", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter) ([]Account, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	base := `
		SELECT id, kind, name, ward, point_balance, compliance_score, status, created_at, updated_at
		FROM accounts
		WHERE 1=1`
	args := make([]interface{}, 0, 5)
	idx := 1

	if filter.Kind != nil && *filter.Kind != "" {
		base += fmt.Sprintf(" AND kind = $%d", idx)
		args = append(args, *filter.Kind)
		idx++
	}
	if filter.Ward != nil && *filter.Ward != "" {
		base += fmt.Sprintf(" AND ward = $%d", idx)
		args = append(args, *filter.Ward)
		idx++
	}
	if filter.Status != nil && *filter.Status != "" {
		base += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, *filter.Status)
		idx++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	base += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, filter.Offset)

	accounts := make([]Account, 0)
	if err := r.db.SelectContext(ctx2, &accounts, base, args...); err != nil {
		return nil, fmt.Errorf("%w: list accounts", ErrInternal)
	}

	return accounts, nil
}
