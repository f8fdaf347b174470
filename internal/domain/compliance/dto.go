package compliance

import "time"

type PickupQualityRequest struct {
	Quality string `json:"quality" validate:"required,pickup_quality"`
}

type RejectionRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type ViolationRequest struct {
	ViolationType string `json:"violation_type" validate:"required,violation_type"`
	Severity      string `json:"severity" validate:"required,severity"`
	Notes         string `json:"notes" validate:"max=500"`
}

type AssessmentRequest struct {
	OverallScore int `json:"overall_score" validate:"min=0,max=100"`
}

type ScoreResponse struct {
	AccountID       string `json:"account_id"`
	ComplianceScore int    `json:"compliance_score"`
}

type ViolationResponse struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	ViolationType string    `json:"violation_type"`
	Severity      string    `json:"severity"`
	QualityDelta  int       `json:"quality_delta"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func (v *ViolationRecord) ToResponse() ViolationResponse {
	return ViolationResponse{
		ID:            v.ID.String(),
		AccountID:     v.AccountID.String(),
		ViolationType: string(v.ViolationType),
		Severity:      string(v.Severity),
		QualityDelta:  v.QualityDelta,
		Notes:         v.Notes,
		RecordedBy:    v.RecordedBy.String(),
		RecordedAt:    v.RecordedAt,
	}
}

type AssessmentAverageResponse struct {
	AccountID    string  `json:"account_id"`
	AverageScore float64 `json:"average_score"`
	SampleSize   int     `json:"sample_size"`
}
