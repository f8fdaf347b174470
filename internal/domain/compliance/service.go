package compliance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
)

// maxAssessmentWindow bounds the read-side rolling average.
const maxAssessmentWindow = 10

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// ApplyPickupQuality applies the incremental delta for one pickup's quality
// feedback. Pickup feedback is additive; assessments (ApplyAssessment) are
// authoritative and set the score directly.
func (s *Service) ApplyPickupQuality(ctx context.Context, accountID uuid.UUID, quality PickupQuality) (int, error) {
	delta, ok := quality.Delta()
	if !ok {
		return 0, ErrInvalidQuality
	}

	newScore, err := s.repo.AdjustScore(ctx, accountID, delta)
	if err != nil {
		return 0, err
	}

	s.metrics.ScoreUpdates.WithLabelValues("pickup_quality").Inc()

	log.Info().
		Str("account_id", accountID.String()).
		Str("quality", string(quality)).
		Int("delta", delta).
		Int("new_score", newScore).
		Msg("Pickup quality applied")

	return newScore, nil
}

// ApplyRejection records a rejected pickup: a fixed score penalty plus an
// append-only violation entry.
func (s *Service) ApplyRejection(ctx context.Context, accountID uuid.UUID, reason string, recordedBy uuid.UUID) (int, error) {
	v := &ViolationRecord{
		ID:            uuid.New(),
		AccountID:     accountID,
		ViolationType: ViolationPickupRejection,
		Severity:      SeverityHigh,
		QualityDelta:  rejectionDelta,
		Notes:         reason,
		RecordedBy:    recordedBy,
		RecordedAt:    time.Now().UTC(),
	}

	newScore, err := s.repo.ApplyViolation(ctx, v)
	if err != nil {
		return 0, err
	}

	s.metrics.PickupRejections.Inc()
	s.metrics.ScoreUpdates.WithLabelValues("rejection").Inc()

	log.Info().
		Str("account_id", accountID.String()).
		Str("reason", reason).
		Int("new_score", newScore).
		Msg("Pickup rejection applied")

	return newScore, nil
}

// RecordViolation appends a violation and applies the severity-derived
// score penalty.
func (s *Service) RecordViolation(ctx context.Context, accountID uuid.UUID, violationType ViolationType, severity Severity, notes string, recordedBy uuid.UUID) (int, error) {
	if !violationType.Valid() {
		return 0, ErrInvalidViolationType
	}
	delta, ok := severity.Delta()
	if !ok {
		return 0, ErrInvalidSeverity
	}

	v := &ViolationRecord{
		ID:            uuid.New(),
		AccountID:     accountID,
		ViolationType: violationType,
		Severity:      severity,
		QualityDelta:  delta,
		Notes:         notes,
		RecordedBy:    recordedBy,
		RecordedAt:    time.Now().UTC(),
	}

	newScore, err := s.repo.ApplyViolation(ctx, v)
	if err != nil {
		return 0, err
	}

	s.metrics.ScoreUpdates.WithLabelValues("violation").Inc()

	log.Info().
		Str("account_id", accountID.String()).
		Str("violation_type", string(violationType)).
		Str("severity", string(severity)).
		Int("new_score", newScore).
		Msg("Violation recorded")

	return newScore, nil
}

// ApplyAssessment sets the compliance score to the assessed value.
// Assessments are authoritative, unlike incremental pickup feedback.
func (s *Service) ApplyAssessment(ctx context.Context, accountID uuid.UUID, overallScore int, assessedBy uuid.UUID) (int, error) {
	if overallScore < 0 || overallScore > 100 {
		return 0, ErrInvalidScore
	}

	a := &AssessmentRecord{
		ID:           uuid.New(),
		AccountID:    accountID,
		OverallScore: overallScore,
		AssessedBy:   assessedBy,
		AssessedAt:   time.Now().UTC(),
	}

	newScore, err := s.repo.ApplyAssessment(ctx, a)
	if err != nil {
		return 0, err
	}

	s.metrics.ScoreUpdates.WithLabelValues("assessment").Inc()

	log.Info().
		Str("account_id", accountID.String()).
		Int("score", overallScore).
		Msg("Assessment applied")

	return newScore, nil
}

// AssessmentAverage computes the rolling mean of the last n assessments
// (n capped at 10). Read-side only; never stored on the account.
func (s *Service) AssessmentAverage(ctx context.Context, accountID uuid.UUID, n int) (float64, int, error) {
	if n <= 0 || n > maxAssessmentWindow {
		n = maxAssessmentWindow
	}

	assessments, err := s.repo.LastAssessments(ctx, accountID, n)
	if err != nil {
		return 0, 0, err
	}
	if len(assessments) == 0 {
		return 0, 0, nil
	}

	sum := 0
	for _, a := range assessments {
		sum += a.OverallScore
	}
	return float64(sum) / float64(len(assessments)), len(assessments), nil
}

// Violations returns an account's violation history, newest first.
func (s *Service) Violations(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]ViolationRecord, error) {
	return s.repo.ListViolations(ctx, accountID, limit, offset)
}
