package app

import (
	"context"
	"sync"

	"github.com/shophub/storefront/internal/cart/domain"
)

// Service owns every session's ledger. All mutation goes through the named
// operations below; each one mutates under the lock, recomputes aggregates
// and writes through to the store before returning, so two rapid adds for
// the same product always land as two increments.
type Service struct {
	mu      sync.Mutex
	store   Store
	ledgers map[string]*domain.Ledger
}

func NewService(store Store) *Service {
	return &Service{
		store:   store,
		ledgers: make(map[string]*domain.Ledger),
	}
}

// GetCart returns the session's ledger, rehydrating it from the store on
// first access.
func (s *Service) GetCart(ctx context.Context, sessionID string) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return domain.Ledger{}, err
	}
	return ledger.Clone(), nil
}

// AddItem adds one unit of the product and returns the updated ledger.
func (s *Service) AddItem(ctx context.Context, sessionID string, p domain.ProductRef) (domain.Ledger, error) {
	return s.mutate(ctx, sessionID, func(l *domain.Ledger) { l.Add(p) })
}

// RemoveItem decrements one unit; unknown product ids leave the ledger
// unchanged.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (domain.Ledger, error) {
	return s.mutate(ctx, sessionID, func(l *domain.Ledger) { l.Remove(productID) })
}

// RemoveAllItems deletes the whole line item regardless of quantity.
func (s *Service) RemoveAllItems(ctx context.Context, sessionID, productID string) (domain.Ledger, error) {
	return s.mutate(ctx, sessionID, func(l *domain.Ledger) { l.RemoveAll(productID) })
}

// Clear empties the ledger.
func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Ledger, error) {
	return s.mutate(ctx, sessionID, func(l *domain.Ledger) { l.Clear() })
}

// mutate applies op and writes the result through. A failed write rolls the
// in-memory ledger back to its pre-mutation state so callers never observe
// state the store does not hold.
func (s *Service) mutate(ctx context.Context, sessionID string, op func(*domain.Ledger)) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return domain.Ledger{}, err
	}

	before := ledger.Clone()
	op(ledger)

	if err := s.store.Save(ctx, sessionID, *ledger); err != nil {
		*ledger = before
		return domain.Ledger{}, err
	}
	return ledger.Clone(), nil
}

func (s *Service) hydrate(ctx context.Context, sessionID string) (*domain.Ledger, error) {
	if ledger, ok := s.ledgers[sessionID]; ok {
		return ledger, nil
	}

	stored, found, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger := &domain.Ledger{}
	if found {
		*ledger = stored
	}
	s.ledgers[sessionID] = ledger
	return ledger, nil
}
