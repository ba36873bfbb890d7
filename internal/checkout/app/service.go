package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shophub/storefront/internal/checkout/domain"
)

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) ([]CartItem, error)
}

type CartItem struct {
	ProductID string
	Name      string
	Image     string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID      string
	Name    string
	Image   string
	InStock bool
}

type Service struct {
	cart    CartReader
	catalog CatalogReader

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Service{
		cart:          cart,
		catalog:       catalog,
		maxConcurrent: maxConcurrent,
	}
}

// Quote prices the session's cart. Unit prices come from the ledger (they
// were snapshotted at add time); the catalog is consulted concurrently only
// for display data and current stock. Shipping, tax and the grand total are
// derived from the fold subtotal.
func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	items, err := s.cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}

	lines := make([]domain.QuoteLine, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			line := domain.QuoteLine{
				ProductID: it.ProductID,
				Name:      it.Name,
				Image:     it.Image,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				LineTotal: it.LineTotal,
				InStock:   true,
			}

			// Best-effort enrichment: a product that vanished from the
			// catalog keeps its ledger snapshot and stays purchasable.
			if product, err := s.catalog.GetProduct(ctx, it.ProductID); err == nil {
				line.Name = product.Name
				line.Image = product.Image
				line.InStock = product.InStock
			}

			lines[idx] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal
	}

	return domain.Quote{
		Lines:  lines,
		Totals: domain.ComputeTotals(subtotal),
	}, nil
}
