package penalty_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wasteworks/wasteworks-api/internal/domain/account"
	"github.com/wasteworks/wasteworks-api/internal/domain/penalty"
	"github.com/wasteworks/wasteworks-api/internal/pkg/metrics"
)

// stubDirectory stands in for the account service.
type stubDirectory struct {
	accounts map[uuid.UUID]*account.Account
}

func (d *stubDirectory) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := d.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	return a, nil
}

func newTestSetup() (*penalty.Service, *penalty.MemoryRepository, uuid.UUID) {
	repo := penalty.NewMemoryRepository()
	accountID := uuid.New()
	directory := &stubDirectory{accounts: map[uuid.UUID]*account.Account{
		accountID: {ID: accountID, Status: account.StatusActive},
	}}
	svc := penalty.NewService(repo, directory, metrics.NewForTest(), 30)
	return svc, repo, accountID
}

func TestIssuePenalty(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	before := time.Now().UTC()
	p, err := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(500), "mixed waste in dry bin", nil, uuid.New())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if p.Status != penalty.StatusIssued {
		t.Errorf("status = %s, want issued", p.Status)
	}
	wantDue := before.AddDate(0, 0, 30)
	if p.DueDate.Before(wantDue.Add(-time.Minute)) || p.DueDate.After(wantDue.Add(time.Minute)) {
		t.Errorf("due date %v not ~30 days out", p.DueDate)
	}
}

func TestIssueValidation(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	if _, err := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.Zero, "", nil, uuid.New()); !errors.Is(err, penalty.ErrInvalidAmount) {
		t.Errorf("zero amount: got %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.Issue(ctx, accountID, penalty.ViolationType("littering"), decimal.NewFromInt(100), "", nil, uuid.New()); !errors.Is(err, penalty.ErrInvalidViolationType) {
		t.Errorf("bad type: got %v, want ErrInvalidViolationType", err)
	}
	if _, err := svc.Issue(ctx, uuid.New(), penalty.ViolationMixedWaste, decimal.NewFromInt(100), "", nil, uuid.New()); !errors.Is(err, penalty.ErrAccountNotFound) {
		t.Errorf("unknown account: got %v, want ErrAccountNotFound", err)
	}
}

func TestPayPenalty(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	p, err := svc.Issue(ctx, accountID, penalty.ViolationIllegalDumping, decimal.NewFromInt(500), "dumping", nil, uuid.New())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	paid, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(500), "upi")
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	if paid.Status != penalty.StatusPaid {
		t.Errorf("status = %s, want paid", paid.Status)
	}
	if !paid.PaidAmount.Valid || !paid.PaidAmount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Errorf("paid amount = %v, want 500", paid.PaidAmount)
	}
	if !paid.PaidAt.Valid {
		t.Error("paid_at not recorded")
	}
}

func TestPayInsufficientAmount(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	p, _ := svc.Issue(ctx, accountID, penalty.ViolationOverflow, decimal.NewFromInt(500), "overflowing bin", nil, uuid.New())

	_, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(300), "cash")

	var insufficient *penalty.InsufficientPaymentError
	if !errors.As(err, &insufficient) {
		t.Fatalf("got %v, want InsufficientPaymentError", err)
	}
	if !insufficient.Required.Equal(decimal.NewFromInt(500)) || !insufficient.Received.Equal(decimal.NewFromInt(300)) {
		t.Errorf("error details = {%s %s}, want {500 300}", insufficient.Required, insufficient.Received)
	}

	// Underpayment must leave the penalty untouched.
	got, _ := svc.Get(ctx, p.ID)
	if got.Status != penalty.StatusIssued {
		t.Errorf("status = %s after underpayment, want issued", got.Status)
	}
}

func TestPayTwice(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	p, _ := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(200), "", nil, uuid.New())

	if _, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(200), "upi"); err != nil {
		t.Fatalf("first pay failed: %v", err)
	}

	_, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(200), "cash")
	if !errors.Is(err, penalty.ErrAlreadyPaid) {
		t.Fatalf("second pay: got %v, want ErrAlreadyPaid", err)
	}

	// The record must keep only the first payment.
	got, _ := svc.Get(ctx, p.ID)
	if got.PaymentMethod.String != "upi" {
		t.Errorf("payment method = %s, want upi", got.PaymentMethod.String)
	}
}

func TestConcurrentPayments(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	p, _ := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(100), "", nil, uuid.New())

	const goroutines = 10
	var wg sync.WaitGroup
	success := 0
	var mu sync.Mutex

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(100), "upi")
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			if !errors.Is(err, penalty.ErrAlreadyPaid) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success != 1 {
		t.Fatalf("expected exactly 1 successful payment, got %d", success)
	}
}

func TestCancelPenalty(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	p, _ := svc.Issue(ctx, accountID, penalty.ViolationMissedSegregation, decimal.NewFromInt(150), "", nil, uuid.New())

	cancelled, err := svc.Cancel(ctx, p.ID, "issued in error")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != penalty.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	// A cancelled penalty can no longer be paid.
	if _, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(150), "upi"); !errors.Is(err, penalty.ErrCancelled) {
		t.Errorf("pay after cancel: got %v, want ErrCancelled", err)
	}

	// And a paid penalty cannot be cancelled.
	p2, _ := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(100), "", nil, uuid.New())
	if _, err := svc.Pay(ctx, p2.ID, decimal.NewFromInt(100), "upi"); err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if _, err := svc.Cancel(ctx, p2.ID, "too late"); !errors.Is(err, penalty.ErrAlreadyPaid) {
		t.Errorf("cancel after pay: got %v, want ErrAlreadyPaid", err)
	}
}

func TestOverdueIsDerived(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	past := time.Now().UTC().AddDate(0, 0, -1)
	p, err := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(100), "", &past, uuid.New())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Stored status stays issued; overdue is a view.
	if p.Status != penalty.StatusIssued {
		t.Errorf("stored status = %s, want issued", p.Status)
	}
	if got := p.EffectiveStatus(time.Now().UTC()); got != penalty.StatusOverdue {
		t.Errorf("effective status = %s, want overdue", got)
	}

	// An overdue penalty is still payable.
	if _, err := svc.Pay(ctx, p.ID, decimal.NewFromInt(100), "cash"); err != nil {
		t.Fatalf("pay of overdue penalty failed: %v", err)
	}
}

func TestListByAccount(t *testing.T) {
	svc, _, accountID := newTestSetup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Issue(ctx, accountID, penalty.ViolationMixedWaste, decimal.NewFromInt(100), "", nil, uuid.New()); err != nil {
			t.Fatalf("issue failed: %v", err)
		}
	}

	penalties, err := svc.ListByAccount(ctx, accountID, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(penalties) != 3 {
		t.Fatalf("expected 3 penalties, got %d", len(penalties))
	}
}
