package compliance

import (
	"time"

	"github.com/google/uuid"
)

// PickupQuality is the collector's feedback on one pickup. Good behavior
// nudges the compliance score up; a rejected pickup earns no credit here and
// is penalized through ApplyRejection instead.
type PickupQuality string

const (
	PickupExcellent PickupQuality = "excellent"
	PickupGood      PickupQuality = "good"
	PickupPoor      PickupQuality = "poor"
	PickupRejected  PickupQuality = "rejected"
)

// Delta returns the score delta for the pickup quality.
func (q PickupQuality) Delta() (int, bool) {
	switch q {
	case PickupExcellent:
		return 10, true
	case PickupGood:
		return 8, true
	case PickupPoor:
		return 4, true
	case PickupRejected:
		return 0, true
	}
	return 0, false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Delta returns the score delta applied when a violation of this severity
// is recorded.
func (s Severity) Delta() (int, bool) {
	switch s {
	case SeverityLow:
		return -5, true
	case SeverityMedium:
		return -10, true
	case SeverityHigh:
		return -15, true
	case SeverityCritical:
		return -25, true
	}
	return 0, false
}

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

// rejectionDelta is the fixed score penalty for a rejected pickup.
const rejectionDelta = -15

// ViolationRecord is an append-only entry describing one segregation-quality
// failure. QualityDelta is the score delta that was applied when it was
// recorded.
type ViolationRecord struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	AccountID     uuid.UUID     `db:"account_id" json:"account_id"`
	ViolationType ViolationType `db:"violation_type" json:"violation_type"`
	Severity      Severity      `db:"severity" json:"severity"`
	QualityDelta  int           `db:"quality_delta" json:"quality_delta"`
	Notes         string        `db:"notes" json:"notes"`
	RecordedBy    uuid.UUID     `db:"recorded_by" json:"recorded_by"`
	RecordedAt    time.Time     `db:"recorded_at" json:"recorded_at"`
}

// AssessmentRecord is an authoritative cleanliness assessment. Unlike pickup
// feedback it sets the score absolutely rather than applying a delta.
type AssessmentRecord struct {
	ID           uuid.UUID `db:"id" json:"id"`
	AccountID    uuid.UUID `db:"account_id" json:"account_id"`
	OverallScore int       `db:"overall_score" json:"overall_score"`
	AssessedBy   uuid.UUID `db:"assessed_by" json:"assessed_by"`
	AssessedAt   time.Time `db:"assessed_at" json:"assessed_at"`
}

// clampScore keeps compliance scores inside [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
