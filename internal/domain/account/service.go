package account

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a participant account with zero balance and zero score.
func (s *Service) Register(ctx context.Context, kind Kind, name, ward string) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		ID:              uuid.New(),
		Kind:            kind,
		Name:            name,
		Ward:            ward,
		PointBalance:    0,
		ComplianceScore: 0,
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().
		Str("account_id", a.ID.String()).
		Str("kind", string(a.Kind)).
		Str("ward", a.Ward).
		Msg("Account registered")

	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.Get(ctx, id)
}

// SetStatus flips an account between active and suspended. Accounts are
// never deleted.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if status != StatusActive && status != StatusSuspended {
		return ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Account, error) {
	return s.repo.List(ctx, filter)
}
