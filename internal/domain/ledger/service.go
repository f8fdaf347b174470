package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
)

// AwardResult is the outcome of a point award.
type AwardResult struct {
	PointsAwarded int `json:"points_awarded"`
	NewBalance    int `json:"new_balance"`
}

// RedeemResult is the outcome of a point redemption.
type RedeemResult struct {
	PreviousBalance int `json:"previous_balance"`
	NewBalance      int `json:"new_balance"`
	PointsRedeemed  int `json:"points_redeemed"`
}

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// Award computes the reward for a quantity of processed waste and credits
// the account. The formula inputs are recorded on the event for audit.
func (s *Service) Award(ctx context.Context, accountID uuid.UUID, quantityKg float64, grade QualityGrade, segregationScore int, reason string, awardedBy uuid.UUID) (*AwardResult, error) {
	if quantityKg < 0 {
		return nil, ErrInvalidQuantity
	}
	if segregationScore < 0 || segregationScore > 100 {
		return nil, ErrInvalidScore
	}
	multiplier, ok := grade.Multiplier()
	if !ok {
		return nil, ErrInvalidGrade
	}

	points := ComputePoints(quantityKg, multiplier, segregationScore)

	ev := &RewardEvent{
		ID:               uuid.New(),
		AccountID:        accountID,
		PointsAwarded:    points,
		QuantityKg:       quantityKg,
		QualityGrade:     grade,
		SegregationScore: segregationScore,
		Reason:           reason,
		AwardedBy:        awardedBy,
		AwardedAt:        time.Now().UTC(),
	}

	newBalance, err := s.repo.Award(ctx, ev)
	if err != nil {
		return nil, err
	}

	s.metrics.PointsAwarded.Add(float64(points))

	log.Info().
		Str("account_id", accountID.String()).
		Int("points", points).
		Str("grade", string(grade)).
		Float64("quantity_kg", quantityKg).
		Int("new_balance", newBalance).
		Msg("Points awarded")

	return &AwardResult{PointsAwarded: points, NewBalance: newBalance}, nil
}

// Redeem spends points from an account in exchange for a reward. The balance
// check and the deduction are a single atomic step in the repository.
func (s *Service) Redeem(ctx context.Context, accountID uuid.UUID, points int, rewardType RewardType, rewardValue decimal.Decimal, description string) (*RedeemResult, error) {
	if points <= 0 {
		return nil, ErrInvalidPoints
	}
	if !rewardType.Valid() {
		return nil, ErrInvalidRewardType
	}
	if rewardValue.IsNegative() {
		return nil, ErrInvalidRewardType
	}

	ev := &RedemptionEvent{
		ID:             uuid.New(),
		AccountID:      accountID,
		PointsRedeemed: points,
		RewardType:     rewardType,
		RewardValue:    rewardValue,
		Description:    description,
		RedeemedAt:     time.Now().UTC(),
	}

	previous, newBalance, err := s.repo.Redeem(ctx, ev)
	if err != nil {
		if _, denied := err.(*InsufficientPointsError); denied {
			s.metrics.RedemptionsDenied.Inc()
		}
		return nil, err
	}

	s.metrics.PointsRedeemed.Add(float64(points))

	log.Info().
		Str("account_id", accountID.String()).
		Int("points", points).
		Str("reward_type", string(rewardType)).
		Int("new_balance", newBalance).
		Msg("Points redeemed")

	return &RedeemResult{
		PreviousBalance: previous,
		NewBalance:      newBalance,
		PointsRedeemed:  points,
	}, nil
}

// Transactions returns the merged award/redemption history, newest first.
func (s *Service) Transactions(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, accountID, limit, offset)
}
