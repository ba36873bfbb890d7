package app

import (
	"context"

	"github.com/shophub/storefront/internal/cart/domain"
)

// Store persists one serialized ledger blob per session under a fixed key,
// written through on every mutation and rehydrated on first access.
type Store interface {
	Save(ctx context.Context, sessionID string, ledger domain.Ledger) error
	Load(ctx context.Context, sessionID string) (domain.Ledger, bool, error)
}
