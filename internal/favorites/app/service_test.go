package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shophub/storefront/internal/docstore"
	"github.com/shophub/storefront/internal/docstore/memory"
	"github.com/shophub/storefront/internal/favorites/domain"
)

var laptop = domain.ProductInfo{
	ProductID: "42",
	Name:      "Laptop",
	Price:     999.99,
	Image:     "https://img.example/laptop.png",
	Category:  "electronics",
}

func newTestService(store docstore.Store) *Service {
	svc := NewService(store)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return svc
}

func TestToggleRoundTrip(t *testing.T) {
	svc := newTestService(memory.New())
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "u1", laptop, false)
	if err != nil || !on {
		t.Fatalf("toggle on: state=%v err=%v", on, err)
	}

	fav, err := svc.IsFavorite(ctx, "u1", "42")
	if err != nil || !fav {
		t.Fatalf("IsFavorite after add: fav=%v err=%v", fav, err)
	}

	off, err := svc.Toggle(ctx, "u1", laptop, true)
	if err != nil || off {
		t.Fatalf("toggle off: state=%v err=%v", off, err)
	}

	fav, err = svc.IsFavorite(ctx, "u1", "42")
	if err != nil || fav {
		t.Fatalf("IsFavorite after remove: fav=%v err=%v", fav, err)
	}
}

func TestReAddRefreshesInsteadOfDuplicating(t *testing.T) {
	store := memory.New()
	svc := newTestService(store)
	ctx := context.Background()

	if err := svc.Add(ctx, "u1", laptop); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	first, err := store.Get(ctx, "favorites", "u1_42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if err := svc.Add(ctx, "u1", laptop); err != nil {
		t.Fatalf("second Add failed: %v", err)
	}

	entries, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("re-add duplicated the entry: %+v", entries)
	}

	second, err := store.Get(ctx, "favorites", "u1_42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if second["createdAt"] != first["createdAt"] {
		t.Fatalf("createdAt rewritten on re-add: %v -> %v", first["createdAt"], second["createdAt"])
	}
	if second["updatedAt"] == first["updatedAt"] {
		t.Fatal("updatedAt not refreshed on re-add")
	}
}

func TestGuestEntriesStoreNullOwner(t *testing.T) {
	store := memory.New()
	svc := newTestService(store)
	ctx := context.Background()

	if err := svc.Add(ctx, "guest", laptop); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := svc.Add(ctx, "u1", domain.ProductInfo{ProductID: "7", Name: "Mouse"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	doc, err := store.Get(ctx, "favorites", "guest_42")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if doc["uid"] != nil {
		t.Fatalf("guest uid should be stored null, got %v", doc["uid"])
	}

	entries, err := svc.List(ctx, "guest")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ProductID != "42" {
		t.Fatalf("guest list leaked other owners: %+v", entries)
	}
	if entries[0].UID != nil {
		t.Fatalf("guest entry decoded with uid %v", *entries[0].UID)
	}
}

func TestListOrdersByName(t *testing.T) {
	svc := newTestService(memory.New())
	ctx := context.Background()

	for _, p := range []domain.ProductInfo{
		{ProductID: "1", Name: "Zebra Mug"},
		{ProductID: "2", Name: "Apple Stand"},
		{ProductID: "3", Name: "Mouse"},
	} {
		if err := svc.Add(ctx, "u1", p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	entries, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := []string{entries[0].Name, entries[1].Name, entries[2].Name}
	want := []string{"Apple Stand", "Mouse", "Zebra Mug"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("wrong order: got %v want %v", got, want)
		}
	}
}

type failingStore struct {
	docstore.Store
}

func (failingStore) Upsert(ctx context.Context, collection, id string, fields docstore.Fields, merge bool) error {
	return errors.New("write refused")
}

func (failingStore) Delete(ctx context.Context, collection, id string) error {
	return errors.New("delete refused")
}

func TestToggleKeepsStateOnFailedWrite(t *testing.T) {
	svc := newTestService(failingStore{Store: memory.New()})
	ctx := context.Background()

	state, err := svc.Toggle(ctx, "u1", laptop, false)
	if err == nil {
		t.Fatal("expected write error")
	}
	if state != false {
		t.Fatal("failed add flipped state to true")
	}

	state, err = svc.Toggle(ctx, "u1", laptop, true)
	if err == nil {
		t.Fatal("expected delete error")
	}
	if state != true {
		t.Fatal("failed remove flipped state to false")
	}
}
