package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for tests and local development.
// A single mutex serializes all mutations, which trivially satisfies the
// per-account serialization the ledger requires.
type MemoryRepository struct {
	mu          sync.Mutex
	balances    map[uuid.UUID]int
	suspended   map[uuid.UUID]bool
	rewards     []RewardEvent
	redemptions []RedemptionEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		balances:  make(map[uuid.UUID]int),
		suspended: make(map[uuid.UUID]bool),
	}
}

// SeedAccount registers an account with a starting balance.
func (m *MemoryRepository) SeedAccount(id uuid.UUID, balance int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[id] = balance
}

// Suspend marks an account as suspended.
func (m *MemoryRepository) Suspend(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended[id] = true
}

// Balance returns the current balance of an account.
func (m *MemoryRepository) Balance(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[id]
}

// Balances returns a copy of all account balances.
func (m *MemoryRepository) Balances() map[uuid.UUID]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uuid.UUID]int, len(m.balances))
	for k, v := range m.balances {
		out[k] = v
	}
	return out
}

// RewardEvents returns a copy of all reward events.
func (m *MemoryRepository) RewardEvents() []RewardEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RewardEvent(nil), m.rewards...)
}

// RedemptionEvents returns a copy of all redemption events.
func (m *MemoryRepository) RedemptionEvents() []RedemptionEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RedemptionEvent(nil), m.redemptions...)
}

func (m *MemoryRepository) Award(_ context.Context, ev *RewardEvent) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[ev.AccountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if m.suspended[ev.AccountID] {
		return 0, ErrAccountSuspended
	}

	balance += ev.PointsAwarded
	m.balances[ev.AccountID] = balance
	m.rewards = append(m.rewards, *ev)

	return balance, nil
}

func (m *MemoryRepository) Redeem(_ context.Context, ev *RedemptionEvent) (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance, ok := m.balances[ev.AccountID]
	if !ok {
		return 0, 0, ErrAccountNotFound
	}
	if m.suspended[ev.AccountID] {
		return 0, 0, ErrAccountSuspended
	}
	if balance < ev.PointsRedeemed {
		return 0, 0, &InsufficientPointsError{Available: balance, Requested: ev.PointsRedeemed}
	}

	newBalance := balance - ev.PointsRedeemed
	m.balances[ev.AccountID] = newBalance
	m.redemptions = append(m.redemptions, *ev)

	return balance, newBalance, nil
}

func (m *MemoryRepository) ListTransactions(_ context.Context, accountID uuid.UUID, limit, offset int) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var result []Transaction
	for _, ev := range m.rewards {
		if ev.AccountID != accountID {
			continue
		}
		result = append(result, Transaction{
			ID:          ev.ID,
			AccountID:   ev.AccountID,
			EntryType:   EntryAward,
			PointsDelta: ev.PointsAwarded,
			Description: ev.Reason,
			OccurredAt:  ev.AwardedAt,
		})
	}
	for _, ev := range m.redemptions {
		if ev.AccountID != accountID {
			continue
		}
		result = append(result, Transaction{
			ID:          ev.ID,
			AccountID:   ev.AccountID,
			EntryType:   EntryRedemption,
			PointsDelta: -ev.PointsRedeemed,
			Description: ev.Description,
			OccurredAt:  ev.RedeemedAt,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})

	if offset > 0 {
		if offset >= len(result) {
			return []Transaction{}, nil
		}
		result = result[offset:]
	}
	if limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}
