package compliance

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for tests and local development.
type MemoryRepository struct {
	mu          sync.Mutex
	scores      map[uuid.UUID]int
	violations  []ViolationRecord
	assessments []AssessmentRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{scores: make(map[uuid.UUID]int)}
}

// SeedAccount registers an account with a starting compliance score.
func (m *MemoryRepository) SeedAccount(id uuid.UUID, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[id] = score
}

// Score returns the current compliance score of an account.
func (m *MemoryRepository) Score(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores[id]
}

func (m *MemoryRepository) AdjustScore(_ context.Context, accountID uuid.UUID, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adjustLocked(accountID, delta)
}

func (m *MemoryRepository) adjustLocked(accountID uuid.UUID, delta int) (int, error) {
	score, ok := m.scores[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	score = clampScore(score + delta)
	m.scores[accountID] = score
	return score, nil
}

func (m *MemoryRepository) ApplyViolation(_ context.Context, v *ViolationRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	newScore, err := m.adjustLocked(v.AccountID, v.QualityDelta)
	if err != nil {
		return 0, err
	}
	m.violations = append(m.violations, *v)
	return newScore, nil
}

func (m *MemoryRepository) ApplyAssessment(_ context.Context, a *AssessmentRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scores[a.AccountID]; !ok {
		return 0, ErrAccountNotFound
	}
	newScore := clampScore(a.OverallScore)
	m.scores[a.AccountID] = newScore
	m.assessments = append(m.assessments, *a)
	return newScore, nil
}

func (m *MemoryRepository) ListViolations(_ context.Context, accountID uuid.UUID, limit, offset int) ([]ViolationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var result []ViolationRecord
	for _, v := range m.violations {
		if v.AccountID == accountID {
			result = append(result, v)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})

	if offset > 0 {
		if offset >= len(result) {
			return []ViolationRecord{}, nil
		}
		result = result[offset:]
	}
	if limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}

func (m *MemoryRepository) LastAssessments(_ context.Context, accountID uuid.UUID, n int) ([]AssessmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// The store is append-only, so insertion order is chronological.
	var matched []AssessmentRecord
	for _, a := range m.assessments {
		if a.AccountID == accountID {
			matched = append(matched, a)
		}
	}

	if n > 0 && n < len(matched) {
		matched = matched[len(matched)-n:]
	}

	// Newest first.
	result := make([]AssessmentRecord, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		result = append(result, matched[i])
	}

	return result, nil
}
