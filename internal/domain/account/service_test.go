package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/wasteworks/wasteworks-api/internal/domain/account"
)

func TestRegisterStartsAtZero(t *testing.T) {
	svc := account.NewService(account.NewMemoryRepository())

	a, err := svc.Register(context.Background(), account.KindCitizen, "Asha Verma", "ward-7")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if a.PointBalance != 0 {
		t.Errorf("balance = %d, want 0", a.PointBalance)
	}
	if a.ComplianceScore != 0 {
		t.Errorf("score = %d, want 0", a.ComplianceScore)
	}
	if a.Status != account.StatusActive {
		t.Errorf("status = %s, want active", a.Status)
	}
}

func TestGetUnknownAccount(t *testing.T) {
	svc := account.NewService(account.NewMemoryRepository())

	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSetStatus(t *testing.T) {
	svc := account.NewService(account.NewMemoryRepository())
	ctx := context.Background()

	a, err := svc.Register(ctx, account.KindBulkGenerator, "Meadow Apartments", "ward-3")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SetStatus(ctx, a.ID, account.StatusSuspended); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	got, err := svc.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != account.StatusSuspended {
		t.Errorf("status = %s, want suspended", got.Status)
	}

	if err := svc.SetStatus(ctx, a.ID, account.Status("deleted")); !errors.Is(err, account.ErrInvalidStatus) {
		t.Errorf("got %v, want ErrInvalidStatus", err)
	}
}

func TestListFilters(t *testing.T) {
	svc := account.NewService(account.NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, account.KindCitizen, "c1", "ward-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, account.KindCitizen, "c2", "ward-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, account.KindBulkGenerator, "b1", "ward-1"); err != nil {
		t.Fatal(err)
	}

	ward := "ward-1"
	byWard, err := svc.List(ctx, account.Filter{Ward: &ward})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byWard) != 2 {
		t.Errorf("ward-1 accounts = %d, want 2", len(byWard))
	}

	kind := account.KindBulkGenerator
	byKind, err := svc.List(ctx, account.Filter{Kind: &kind})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byKind) != 1 {
		t.Errorf("bulk generators = %d, want 1", len(byKind))
	}
}
