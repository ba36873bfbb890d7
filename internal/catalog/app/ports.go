package app

import (
	"context"

	"github.com/shophub/storefront/internal/catalog/domain"
)

// Source is the read-only remote catalog collaborator, pre-normalization.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.RawProduct, error)
	GetProduct(ctx context.Context, id string) (domain.RawProduct, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.RawProduct, error)
}
