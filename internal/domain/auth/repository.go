package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	Create(ctx context.Context, staff *Staff) error
	GetByEmail(ctx context.Context, email string) (*Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, staff *Staff) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO staff (id, email, name, password_hash, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, staff.ID, staff.Email, staff.Name, staff.PasswordHash, staff.Role, staff.Active, staff.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("%w: create staff", ErrInternal)
	}
	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var staff Staff
	err := r.db.GetContext(ctx2, &staff, `
		SELECT id, email, name, password_hash, role, active, created_at
		FROM staff
		WHERE email = $1
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: get staff by email", ErrInternal)
	}
	return &staff, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Staff, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var staff Staff
	err := r.db.GetContext(ctx2, &staff, `
		SELECT id, email, name, password_hash, role, active, created_at
		FROM staff
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("%w: get staff by id", ErrInternal)
	}
	return &staff, nil
}
