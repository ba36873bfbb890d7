package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shophub/storefront/internal/checkout/domain"
)

type fakeCart struct {
	items []CartItem
	err   error
}

func (f fakeCart) GetCart(ctx context.Context, sessionID string) ([]CartItem, error) {
	return f.items, f.err
}

type fakeCatalog struct {
	products map[string]Product
	err      error
}

func (f fakeCatalog) GetProduct(ctx context.Context, productID string) (Product, error) {
	if f.err != nil {
		return Product{}, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return Product{}, errors.New("not found")
	}
	return p, nil
}

func TestQuoteComputesTotalsFromLedgerPrices(t *testing.T) {
	cart := fakeCart{items: []CartItem{
		{ProductID: "a", Name: "A", Quantity: 1, UnitPrice: 10, LineTotal: 10},
		{ProductID: "b", Name: "B", Quantity: 2, UnitPrice: 20, LineTotal: 40},
	}}
	catalog := fakeCatalog{products: map[string]Product{
		"a": {ID: "a", Name: "A", InStock: true},
		"b": {ID: "b", Name: "B", InStock: true},
	}}

	svc := NewService(cart, catalog, 4)
	quote, err := svc.Quote(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if quote.Totals.Subtotal != 50 {
		t.Fatalf("expected subtotal 50, got %v", quote.Totals.Subtotal)
	}
	if quote.Totals.Shipping != domain.FlatShippingFee {
		t.Fatalf("subtotal of exactly 50 must not ship free, got %v", quote.Totals.Shipping)
	}
	if len(quote.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(quote.Lines))
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	svc := NewService(fakeCart{}, fakeCatalog{}, 4)

	quote, err := svc.Quote(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if len(quote.Lines) != 0 || quote.Totals.Subtotal != 0 {
		t.Fatalf("expected empty quote, got %+v", quote)
	}
}

func TestQuoteSurvivesCatalogFailure(t *testing.T) {
	cart := fakeCart{items: []CartItem{
		{ProductID: "a", Name: "Snapshot Name", Quantity: 1, UnitPrice: 10, LineTotal: 10},
	}}
	catalog := fakeCatalog{err: errors.New("catalog down")}

	svc := NewService(cart, catalog, 4)
	quote, err := svc.Quote(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	line := quote.Lines[0]
	if line.Name != "Snapshot Name" || !line.InStock {
		t.Fatalf("expected ledger snapshot fallback, got %+v", line)
	}
}

func TestQuoteRejectsNonPositiveQuantity(t *testing.T) {
	cart := fakeCart{items: []CartItem{{ProductID: "a", Quantity: 0}}}

	svc := NewService(cart, fakeCatalog{}, 4)
	if _, err := svc.Quote(context.Background(), "s1"); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestQuotePropagatesCartError(t *testing.T) {
	svc := NewService(fakeCart{err: errors.New("redis down")}, fakeCatalog{}, 4)
	if _, err := svc.Quote(context.Background(), "s1"); err == nil {
		t.Fatal("expected cart error to propagate")
	}
}
