package adapter

import (
	"context"

	cartapp "github.com/shophub/storefront/internal/cart/app"
	checkoutapp "github.com/shophub/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	ledger, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(ledger.Items))
	for _, it := range ledger.Items {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ID,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			LineTotal: it.TotalPrice,
		})
	}
	return items, nil
}
