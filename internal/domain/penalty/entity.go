package penalty

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the stored lifecycle state. The only transitions are
// issued -> paid and issued -> cancelled; nothing moves backward.
// "Overdue" is derived at read time and never stored.
type Status string

const (
	StatusIssued    Status = "issued"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"

	// StatusOverdue only appears in API responses, computed from dueDate.
	StatusOverdue Status = "overdue"
)

type ViolationType string

const (
	ViolationMixedWaste        ViolationType = "mixed_waste"
	ViolationIllegalDumping    ViolationType = "illegal_dumping"
	ViolationMissedSegregation ViolationType = "missed_segregation"
	ViolationPickupRejection   ViolationType = "pickup_rejection"
	ViolationOverflow          ViolationType = "overflow"
)

func (v ViolationType) Valid() bool {
	switch v {
	case ViolationMixedWaste, ViolationIllegalDumping, ViolationMissedSegregation,
		ViolationPickupRejection, ViolationOverflow:
		return true
	}
	return false
}

// PenaltyRecord is a monetary fine with its own payment lifecycle,
// independent of the points ledger.
type PenaltyRecord struct {
	ID            uuid.UUID           `db:"id" json:"id"`
	AccountID     uuid.UUID           `db:"account_id" json:"account_id"`
	ViolationType ViolationType       `db:"violation_type" json:"violation_type"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	Description   string              `db:"description" json:"description"`
	Status        Status              `db:"status" json:"status"`
	IssuedBy      uuid.UUID           `db:"issued_by" json:"issued_by"`
	IssuedAt      time.Time           `db:"issued_at" json:"issued_at"`
	DueDate       time.Time           `db:"due_date" json:"due_date"`
	PaidAt        sql.NullTime        `db:"paid_at" json:"-"`
	PaidAmount    decimal.NullDecimal `db:"paid_amount" json:"-"`
	PaymentMethod sql.NullString      `db:"payment_method" json:"-"`
	CancelReason  sql.NullString      `db:"cancel_reason" json:"-"`
}

// EffectiveStatus reports overdue for issued penalties past their due date.
func (p *PenaltyRecord) EffectiveStatus(now time.Time) Status {
	if p.Status == StatusIssued && now.After(p.DueDate) {
		return StatusOverdue
	}
	return p.Status
}
