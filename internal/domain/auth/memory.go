package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository backs tests and local development.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Staff
	byEmail map[string]uuid.UUID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[uuid.UUID]*Staff),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, staff *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(staff.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrEmailTaken
	}

	cp := *staff
	r.byID[staff.ID] = &cp
	r.byEmail[key] = staff.ID
	return nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	staff, ok := r.byID[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *staff
	return &cp, nil
}
