package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QualityGrade assesses the purity of processed waste and scales the reward.
type QualityGrade string

const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
	GradeD QualityGrade = "D"
)

// Multiplier returns the reward multiplier for the grade.
func (g QualityGrade) Multiplier() (float64, bool) {
	switch g {
	case GradeA:
		return 2.0, true
	case GradeB:
		return 1.5, true
	case GradeC:
		return 1.0, true
	case GradeD:
		return 0.5, true
	}
	return 0, false
}

// RewardType is what redeemed points are exchanged for.
type RewardType string

const (
	RewardTypeCash    RewardType = "cash"
	RewardTypeVoucher RewardType = "voucher"
	RewardTypeProduct RewardType = "product"
	RewardTypeService RewardType = "service"
)

func (t RewardType) Valid() bool {
	switch t {
	case RewardTypeCash, RewardTypeVoucher, RewardTypeProduct, RewardTypeService:
		return true
	}
	return false
}

// RewardEvent is the immutable audit record of one point award. The formula
// inputs are stored so the award can be reconstructed.
type RewardEvent struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	AccountID        uuid.UUID    `db:"account_id" json:"account_id"`
	PointsAwarded    int          `db:"points_awarded" json:"points_awarded"`
	QuantityKg       float64      `db:"quantity_kg" json:"quantity_kg"`
	QualityGrade     QualityGrade `db:"quality_grade" json:"quality_grade"`
	SegregationScore int          `db:"segregation_score" json:"segregation_score"`
	Reason           string       `db:"reason" json:"reason"`
	AwardedBy        uuid.UUID    `db:"awarded_by" json:"awarded_by"`
	AwardedAt        time.Time    `db:"awarded_at" json:"awarded_at"`
}

// RedemptionEvent is the immutable record of one point spend.
type RedemptionEvent struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	AccountID      uuid.UUID       `db:"account_id" json:"account_id"`
	PointsRedeemed int             `db:"points_redeemed" json:"points_redeemed"`
	RewardType     RewardType      `db:"reward_type" json:"reward_type"`
	RewardValue    decimal.Decimal `db:"reward_value" json:"reward_value"`
	Description    string          `db:"description" json:"description"`
	RedeemedAt     time.Time       `db:"redeemed_at" json:"redeemed_at"`
}

// EntryType tags rows in the merged transaction history.
type EntryType string

const (
	EntryAward      EntryType = "award"
	EntryRedemption EntryType = "redemption"
)

// Transaction is one row of an account's merged award/redemption history.
type Transaction struct {
	ID          uuid.UUID `db:"id" json:"id"`
	AccountID   uuid.UUID `db:"account_id" json:"account_id"`
	EntryType   EntryType `db:"entry_type" json:"entry_type"`
	PointsDelta int       `db:"points_delta" json:"points_delta"`
	Description string    `db:"description" json:"description"`
	OccurredAt  time.Time `db:"occurred_at" json:"occurred_at"`
}

// ComputePoints applies the reward formula:
// basePoints = floor(quantityKg * 0.1)
// totalPoints = floor(basePoints * multiplier * segregationScore/100)
func ComputePoints(quantityKg float64, multiplier float64, segregationScore int) int {
	basePoints := math.Floor(quantityKg * 0.1)
	return int(math.Floor(basePoints * multiplier * float64(segregationScore) / 100.0))
}
