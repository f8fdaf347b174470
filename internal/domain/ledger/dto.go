package ledger

import "github.com/shopspring/decimal"

// AwardRequest for POST /ledger/award
type AwardRequest struct {
	AccountID        string  `json:"account_id" validate:"required,uuid"`
	QuantityKg       float64 `json:"quantity_kg" validate:"gte=0"`
	QualityGrade     string  `json:"quality_grade" validate:"required,quality_grade"`
	SegregationScore int     `json:"segregation_score" validate:"gte=0,lte=100"`
	Reason           string  `json:"reason" validate:"omitempty,max=500"`
}

// RedeemRequest for POST /ledger/redeem
type RedeemRequest struct {
	AccountID   string          `json:"account_id" validate:"required,uuid"`
	Points      int             `json:"points" validate:"required,gt=0"`
	RewardType  string          `json:"reward_type" validate:"required,reward_type"`
	RewardValue decimal.Decimal `json:"reward_value"`
	Description string          `json:"description" validate:"omitempty,max=500"`
}
