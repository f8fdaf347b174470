package account

import "time"

// RegisterRequest for POST /accounts
type RegisterRequest struct {
	Kind string `json:"kind" validate:"required,account_kind"`
	Name string `json:"name" validate:"required,min=2,max=200"`
	Ward string `json:"ward" validate:"required,min=1,max=20"`
}

// UpdateStatusRequest for PATCH /accounts/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// AccountResponse for API responses
type AccountResponse struct {
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Name            string `json:"name"`
	Ward            string `json:"ward"`
	PointBalance    int    `json:"point_balance"`
	ComplianceScore int    `json:"compliance_score"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// ToResponse converts entity to response
func (a *Account) ToResponse() *AccountResponse {
	return &AccountResponse{
		ID:              a.ID.String(),
		Kind:            string(a.Kind),
		Name:            a.Name,
		Ward:            a.Ward,
		PointBalance:    a.PointBalance,
		ComplianceScore: a.ComplianceScore,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}
