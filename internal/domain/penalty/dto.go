package penalty

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueRequest for POST /penalties
type IssueRequest struct {
	AccountID     string          `json:"account_id" validate:"required,uuid"`
	ViolationType string          `json:"violation_type" validate:"required,violation_type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" validate:"omitempty,max=1000"`
	DueDate       *string         `json:"due_date" validate:"omitempty"`
}

// PayRequest for POST /penalties/{id}/pay
type PayRequest struct {
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
}

// CancelRequest for POST /penalties/{id}/cancel
type CancelRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// PenaltyResponse for API responses; status is the effective status, so
// issued penalties past their due date show as overdue.
type PenaltyResponse struct {
	ID            string  `json:"id"`
	AccountID     string  `json:"account_id"`
	ViolationType string  `json:"violation_type"`
	Amount        string  `json:"amount"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	IssuedBy      string  `json:"issued_by"`
	IssuedAt      string  `json:"issued_at"`
	DueDate       string  `json:"due_date"`
	PaidAt        *string `json:"paid_at,omitempty"`
	PaidAmount    *string `json:"paid_amount,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

// ToResponse converts entity to response
func (p *PenaltyRecord) ToResponse() *PenaltyResponse {
	resp := &PenaltyResponse{
		ID:            p.ID.String(),
		AccountID:     p.AccountID.String(),
		ViolationType: string(p.ViolationType),
		Amount:        p.Amount.String(),
		Description:   p.Description,
		Status:        string(p.EffectiveStatus(time.Now().UTC())),
		IssuedBy:      p.IssuedBy.String(),
		IssuedAt:      p.IssuedAt.Format(time.RFC3339),
		DueDate:       p.DueDate.Format(time.RFC3339),
	}
	if p.PaidAt.Valid {
		paidAt := p.PaidAt.Time.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	if p.PaidAmount.Valid {
		paidAmount := p.PaidAmount.Decimal.String()
		resp.PaidAmount = &paidAmount
	}
	if p.PaymentMethod.Valid {
		method := p.PaymentMethod.String
		resp.PaymentMethod = &method
	}
	return resp
}
