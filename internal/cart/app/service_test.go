package app

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/shophub/storefront/internal/cart/domain"
)

type fakeStore struct {
	blobs map[string]domain.Ledger
	saves int
	fail  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string]domain.Ledger)}
}

func (f *fakeStore) Save(ctx context.Context, sessionID string, ledger domain.Ledger) error {
	if f.fail {
		return errors.New("storage unreachable")
	}
	f.saves++
	f.blobs[sessionID] = ledger.Clone()
	return nil
}

func (f *fakeStore) Load(ctx context.Context, sessionID string) (domain.Ledger, bool, error) {
	ledger, ok := f.blobs[sessionID]
	return ledger.Clone(), ok, nil
}

var headphones = domain.ProductRef{ID: "1", Title: "Headphones", Price: 149.99}

func TestEveryMutationWritesThrough(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", headphones); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.RemoveItem(ctx, "s1", "1"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, err := svc.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if store.saves != 3 {
		t.Fatalf("expected 3 write-throughs, got %d", store.saves)
	}
}

func TestRehydratesFromStore(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	first := NewService(store)
	if _, err := first.AddItem(ctx, "s1", headphones); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// A fresh service sees the persisted blob.
	second := NewService(store)
	ledger, err := second.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if ledger.TotalQuantity != 1 || len(ledger.Items) != 1 {
		t.Fatalf("expected rehydrated ledger, got %+v", ledger)
	}
}

func TestFailedWriteRollsBack(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", headphones); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	store.fail = true
	if _, err := svc.AddItem(ctx, "s1", headphones); err == nil {
		t.Fatal("expected error when store write fails")
	}
	store.fail = false

	ledger, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if ledger.TotalQuantity != 1 {
		t.Fatalf("failed mutation leaked into state: %+v", ledger)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", headphones); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	other, err := svc.GetCart(ctx, "s2")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if other.TotalQuantity != 0 {
		t.Fatalf("sessions leaked into each other: %+v", other)
	}
}

func TestConcurrentAddsAllLand(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(ctx, "s1", headphones)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	ledger, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if ledger.TotalQuantity != n {
		t.Fatalf("expected quantity %d, got %d", n, ledger.TotalQuantity)
	}
	if len(ledger.Items) != 1 {
		t.Fatalf("expected a single line item, got %d", len(ledger.Items))
	}
}

func TestReturnedLedgerIsACopy(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	ledger, err := svc.AddItem(ctx, "s1", headphones)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Mutating the returned value must not touch the service's state.
	ledger.Items[0].Quantity = 99

	fresh, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if fresh.Items[0].Quantity != 1 {
		t.Fatalf("aggregate mutated through returned copy: %+v", fresh)
	}
}
