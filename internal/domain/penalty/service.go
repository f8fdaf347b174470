package penalty

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wasteworks/wasteworks-api/internal/domain/account"
	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
)

// AccountDirectory is the slice of the account store the penalty service
// needs: existence checks when issuing.
type AccountDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountDirectory
	metrics  *metrics.Metrics
	dueDays  int
}

func NewService(repo Repository, accounts AccountDirectory, m *metrics.Metrics, dueDays int) *Service {
	if dueDays <= 0 {
		dueDays = 30
	}
	return &Service{repo: repo, accounts: accounts, metrics: m, dueDays: dueDays}
}

// Issue creates a penalty against a violator. It never touches the points
// balance; fines and points are independent ledgers.
func (s *Service) Issue(ctx context.Context, accountID uuid.UUID, violationType ViolationType, amount decimal.Decimal, description string, dueDate *time.Time, issuedBy uuid.UUID) (*PenaltyRecord, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !violationType.Valid() {
		return nil, ErrInvalidViolationType
	}

	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	due := now.AddDate(0, 0, s.dueDays)
	if dueDate != nil {
		due = dueDate.UTC()
	}

	p := &PenaltyRecord{
		ID:            uuid.New(),
		AccountID:     accountID,
		ViolationType: violationType,
		Amount:        amount,
		Description:   description,
		Status:        StatusIssued,
		IssuedBy:      issuedBy,
		IssuedAt:      now,
		DueDate:       due,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PenaltiesIssued.Inc()

	log.Info().
		Str("penalty_id", p.ID.String()).
		Str("account_id", accountID.String()).
		Str("violation_type", string(violationType)).
		Str("amount", amount.String()).
		Msg("Penalty issued")

	return p, nil
}

// Pay settles an issued penalty. Paying twice fails with ErrAlreadyPaid and
// the record keeps only the first payment.
func (s *Service) Pay(ctx context.Context, penaltyID uuid.UUID, paidAmount decimal.Decimal, paymentMethod string) (*PenaltyRecord, error) {
	if !paidAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	p, err := s.repo.Pay(ctx, penaltyID, paidAmount, paymentMethod, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.metrics.PenaltiesPaid.Inc()

	log.Info().
		Str("penalty_id", p.ID.String()).
		Str("paid_amount", paidAmount.String()).
		Str("payment_method", paymentMethod).
		Msg("Penalty paid")

	return p, nil
}

// Cancel voids an issued penalty.
func (s *Service) Cancel(ctx context.Context, penaltyID uuid.UUID, reason string) (*PenaltyRecord, error) {
	p, err := s.repo.Cancel(ctx, penaltyID, reason)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("penalty_id", p.ID.String()).
		Str("reason", reason).
		Msg("Penalty cancelled")

	return p, nil
}

func (s *Service) Get(ctx context.Context, penaltyID uuid.UUID) (*PenaltyRecord, error) {
	return s.repo.Get(ctx, penaltyID)
}

func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]PenaltyRecord, error) {
	return s.repo.ListByAccount(ctx, accountID, limit, offset)
}

func (s *Service) List(ctx context.Context, status *Status, limit, offset int) ([]PenaltyRecord, error) {
	return s.repo.List(ctx, status, limit, offset)
}
