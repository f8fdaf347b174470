package compliance_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/wasteworks/wasteworks-api/internal/domain/compliance"
	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
)

func newTestService(repo compliance.Repository) *compliance.Service {
	return compliance.NewService(repo, metrics.NewForTest())
}

func TestPickupQualityDeltas(t *testing.T) {
	cases := []struct {
		quality   compliance.PickupQuality
		start     int
		wantScore int
	}{
		{compliance.PickupExcellent, 50, 60},
		{compliance.PickupGood, 50, 58},
		{compliance.PickupPoor, 50, 54},
		{compliance.PickupRejected, 50, 50},
	}

	for _, tc := range cases {
		t.Run(string(tc.quality), func(t *testing.T) {
			repo := compliance.NewMemoryRepository()
			accountID := uuid.New()
			repo.SeedAccount(accountID, tc.start)

			svc := newTestService(repo)

			newScore, err := svc.ApplyPickupQuality(context.Background(), accountID, tc.quality)
			if err != nil {
				t.Fatalf("apply failed: %v", err)
			}
			if newScore != tc.wantScore {
				t.Errorf("score = %d, want %d", newScore, tc.wantScore)
			}
		})
	}
}

func TestScoreClampedAtUpperBound(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 95)

	svc := newTestService(repo)

	newScore, err := svc.ApplyPickupQuality(context.Background(), accountID, compliance.PickupExcellent)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if newScore != 100 {
		t.Errorf("score = %d, want 100 (clamped)", newScore)
	}
}

func TestScoreClampedAtLowerBound(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 5)

	svc := newTestService(repo)

	newScore, err := svc.ApplyRejection(context.Background(), accountID, "contaminated load", uuid.New())
	if err != nil {
		t.Fatalf("rejection failed: %v", err)
	}
	if newScore != 0 {
		t.Errorf("score = %d, want 0 (clamped)", newScore)
	}
}

func TestRejectionAppendsViolation(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 80)

	svc := newTestService(repo)
	ctx := context.Background()

	newScore, err := svc.ApplyRejection(ctx, accountID, "mixed recyclables", uuid.New())
	if err != nil {
		t.Fatalf("rejection failed: %v", err)
	}
	if newScore != 65 {
		t.Errorf("score = %d, want 65 (fixed -15)", newScore)
	}

	violations, err := svc.Violations(ctx, accountID, 10, 0)
	if err != nil {
		t.Fatalf("list violations failed: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.ViolationType != compliance.ViolationPickupRejection {
		t.Errorf("type = %s, want pickup_rejection", v.ViolationType)
	}
	if v.QualityDelta != -15 {
		t.Errorf("delta = %d, want -15", v.QualityDelta)
	}
}

func TestRecordViolationSeverityDeltas(t *testing.T) {
	cases := []struct {
		severity  compliance.Severity
		wantScore int
	}{
		{compliance.SeverityLow, 45},
		{compliance.SeverityMedium, 40},
		{compliance.SeverityHigh, 35},
		{compliance.SeverityCritical, 25},
	}

	for _, tc := range cases {
		t.Run(string(tc.severity), func(t *testing.T) {
			repo := compliance.NewMemoryRepository()
			accountID := uuid.New()
			repo.SeedAccount(accountID, 50)

			svc := newTestService(repo)

			newScore, err := svc.RecordViolation(context.Background(), accountID, compliance.ViolationMixedWaste, tc.severity, "", uuid.New())
			if err != nil {
				t.Fatalf("record failed: %v", err)
			}
			if newScore != tc.wantScore {
				t.Errorf("score = %d, want %d", newScore, tc.wantScore)
			}
		})
	}
}

func TestRecordViolationValidation(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 50)
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.RecordViolation(ctx, accountID, compliance.ViolationType("noise"), compliance.SeverityLow, "", uuid.New()); !errors.Is(err, compliance.ErrInvalidViolationType) {
		t.Errorf("bad type: got %v, want ErrInvalidViolationType", err)
	}
	if _, err := svc.RecordViolation(ctx, accountID, compliance.ViolationMixedWaste, compliance.Severity("severe"), "", uuid.New()); !errors.Is(err, compliance.ErrInvalidSeverity) {
		t.Errorf("bad severity: got %v, want ErrInvalidSeverity", err)
	}
	if _, err := svc.ApplyPickupQuality(ctx, accountID, compliance.PickupQuality("great")); !errors.Is(err, compliance.ErrInvalidQuality) {
		t.Errorf("bad quality: got %v, want ErrInvalidQuality", err)
	}
	if _, err := svc.ApplyPickupQuality(ctx, uuid.New(), compliance.PickupGood); !errors.Is(err, compliance.ErrAccountNotFound) {
		t.Errorf("unknown account: got %v, want ErrAccountNotFound", err)
	}
}

func TestAssessmentSetsScoreDirectly(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 20)

	svc := newTestService(repo)
	ctx := context.Background()

	// Assessments are absolute, not deltas.
	newScore, err := svc.ApplyAssessment(ctx, accountID, 85, uuid.New())
	if err != nil {
		t.Fatalf("assessment failed: %v", err)
	}
	if newScore != 85 {
		t.Errorf("score = %d, want 85", newScore)
	}

	if _, err := svc.ApplyAssessment(ctx, accountID, 101, uuid.New()); !errors.Is(err, compliance.ErrInvalidScore) {
		t.Errorf("score over 100: got %v, want ErrInvalidScore", err)
	}
	if _, err := svc.ApplyAssessment(ctx, accountID, -1, uuid.New()); !errors.Is(err, compliance.ErrInvalidScore) {
		t.Errorf("negative score: got %v, want ErrInvalidScore", err)
	}
}

func TestAssessmentAverage(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 0)

	svc := newTestService(repo)
	ctx := context.Background()

	// 12 assessments, rising 10, 20, ... 120 (capped at 100 by validation,
	// so use 1..12 * 5).
	for i := 1; i <= 12; i++ {
		if _, err := svc.ApplyAssessment(ctx, accountID, i*5, uuid.New()); err != nil {
			t.Fatalf("assessment %d failed: %v", i, err)
		}
	}

	// Window is capped at the last 10: scores 15..60, mean 37.5.
	avg, sampleSize, err := svc.AssessmentAverage(ctx, accountID, 50)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if sampleSize != 10 {
		t.Errorf("sample size = %d, want 10", sampleSize)
	}
	if avg != 37.5 {
		t.Errorf("average = %v, want 37.5", avg)
	}

	// Explicit smaller window.
	avg, sampleSize, err = svc.AssessmentAverage(ctx, accountID, 2)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if sampleSize != 2 {
		t.Errorf("sample size = %d, want 2", sampleSize)
	}
	if avg != 57.5 {
		t.Errorf("average = %v, want 57.5 (mean of 55 and 60)", avg)
	}

	// Average is read-side only; the stored score is the last assessment.
	if got := repo.Score(accountID); got != 60 {
		t.Errorf("stored score = %d, want 60", got)
	}
}

func TestAssessmentAverageNoData(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 0)

	svc := newTestService(repo)

	avg, sampleSize, err := svc.AssessmentAverage(context.Background(), accountID, 10)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if avg != 0 || sampleSize != 0 {
		t.Errorf("got avg=%v size=%d, want zeros", avg, sampleSize)
	}
}

func TestConcurrentScoreUpdatesStayClamped(t *testing.T) {
	repo := compliance.NewMemoryRepository()
	accountID := uuid.New()
	repo.SeedAccount(accountID, 50)

	svc := newTestService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.ApplyPickupQuality(context.Background(), accountID, compliance.PickupExcellent); err != nil {
				t.Errorf("pickup quality failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.ApplyRejection(context.Background(), accountID, "spot check", uuid.New()); err != nil {
				t.Errorf("rejection failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got := repo.Score(accountID)
	if got < 0 || got > 100 {
		t.Fatalf("score %d escaped [0,100]", got)
	}
}
