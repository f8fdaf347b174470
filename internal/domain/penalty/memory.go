package penalty

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryRepository is an in-memory Repository for tests and local development.
type MemoryRepository struct {
	mu        sync.Mutex
	penalties map[uuid.UUID]*PenaltyRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{penalties: make(map[uuid.UUID]*PenaltyRecord)}
}

func (m *MemoryRepository) Insert(_ context.Context, p *PenaltyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *p
	m.penalties[p.ID] = &cp
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.penalties[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) Pay(_ context.Context, id uuid.UUID, paidAmount decimal.Decimal, method string, paidAt time.Time) (*PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.penalties[id]
	if !ok {
		return nil, ErrNotFound
	}

	switch p.Status {
	case StatusPaid:
		return nil, ErrAlreadyPaid
	case StatusCancelled:
		return nil, ErrCancelled
	}

	if paidAmount.LessThan(p.Amount) {
		return nil, &InsufficientPaymentError{Required: p.Amount, Received: paidAmount}
	}

	p.Status = StatusPaid
	p.PaidAt = sql.NullTime{Time: paidAt, Valid: true}
	p.PaidAmount = decimal.NullDecimal{Decimal: paidAmount, Valid: true}
	p.PaymentMethod = sql.NullString{String: method, Valid: true}

	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) Cancel(_ context.Context, id uuid.UUID, reason string) (*PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.penalties[id]
	if !ok {
		return nil, ErrNotFound
	}

	switch p.Status {
	case StatusPaid:
		return nil, ErrAlreadyPaid
	case StatusCancelled:
		return nil, ErrCancelled
	}

	p.Status = StatusCancelled
	p.CancelReason = sql.NullString{String: reason, Valid: true}

	cp := *p
	return &cp, nil
}

func (m *MemoryRepository) ListByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []PenaltyRecord
	for _, p := range m.penalties {
		if p.AccountID == accountID {
			result = append(result, *p)
		}
	}
	return paginate(result, limit, offset), nil
}

func (m *MemoryRepository) List(_ context.Context, status *Status, limit, offset int) ([]PenaltyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []PenaltyRecord
	for _, p := range m.penalties {
		if status != nil && *status != "" && p.Status != *status {
			continue
		}
		result = append(result, *p)
	}
	return paginate(result, limit, offset), nil
}

func paginate(penalties []PenaltyRecord, limit, offset int) []PenaltyRecord {
	sort.Slice(penalties, func(i, j int) bool {
		return penalties[i].IssuedAt.After(penalties[j].IssuedAt)
	})

	if limit <= 0 {
		limit = 20
	}
	if offset > 0 {
		if offset >= len(penalties) {
			return []PenaltyRecord{}
		}
		penalties = penalties[offset:]
	}
	if limit < len(penalties) {
		penalties = penalties[:limit]
	}
	return penalties
}
