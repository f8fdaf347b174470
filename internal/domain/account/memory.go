package account

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for tests and local development.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[uuid.UUID]*Account)}
}

func (m *MemoryRepository) Get(_ context.Context, id uuid.UUID) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryRepository) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *MemoryRepository) SetStatus(_ context.Context, id uuid.UUID, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *MemoryRepository) List(_ context.Context, filter Filter) ([]Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		if filter.Kind != nil && *filter.Kind != "" && a.Kind != *filter.Kind {
			continue
		}
		if filter.Ward != nil && *filter.Ward != "" && a.Ward != *filter.Ward {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && a.Status != *filter.Status {
			continue
		}
		result = append(result, *a)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []Account{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}
