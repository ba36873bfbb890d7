package app

import (
	"context"
	"errors"
	"time"

	"github.com/shophub/storefront/internal/docstore"
	"github.com/shophub/storefront/internal/favorites/domain"
	identity "github.com/shophub/storefront/internal/identity/domain"
)

const collection = "favorites"

type Service struct {
	store docstore.Store
	now   func() time.Time
}

func NewService(store docstore.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// IsFavorite checks whether the (owner, product) entry exists. This is
// advisory display state; Toggle re-derives correctness from its own write.
func (s *Service) IsFavorite(ctx context.Context, ownerID, productID string) (bool, error) {
	_, err := s.store.Get(ctx, collection, domain.CompositeID(ownerID, productID))
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Toggle flips membership based on the caller's tracked state and returns
// the new state. On a failed write it returns the unchanged currentState so
// the caller never flips UI state the store does not hold.
func (s *Service) Toggle(ctx context.Context, ownerID string, p domain.ProductInfo, currentState bool) (bool, error) {
	if currentState {
		if err := s.Remove(ctx, ownerID, p.ProductID); err != nil {
			return currentState, err
		}
		return false, nil
	}

	if err := s.Add(ctx, ownerID, p); err != nil {
		return currentState, err
	}
	return true, nil
}

// Add upserts the entry with merge semantics: re-adding refreshes updatedAt
// instead of duplicating, and createdAt is written only on first create.
func (s *Service) Add(ctx context.Context, ownerID string, p domain.ProductInfo) error {
	id := domain.CompositeID(ownerID, p.ProductID)
	nowStr := s.now().Format(time.RFC3339)

	var uid any
	if ownerID != identity.GuestID {
		uid = ownerID
	}

	fields := docstore.Fields{
		"productId": p.ProductID,
		"name":      p.Name,
		"price":     p.Price,
		"image":     p.Image,
		"category":  p.Category,
		"uid":       uid,
		"updatedAt": nowStr,
	}

	_, err := s.store.Get(ctx, collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		fields["createdAt"] = nowStr
	} else if err != nil {
		return err
	}

	return s.store.Upsert(ctx, collection, id, fields, true)
}

func (s *Service) Remove(ctx context.Context, ownerID, productID string) error {
	return s.store.Delete(ctx, collection, domain.CompositeID(ownerID, productID))
}

// List returns the owner's favorites ordered by name. Guests are matched on
// the stored null uid.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Entry, error) {
	var uid any
	if ownerID != identity.GuestID {
		uid = ownerID
	}

	docs, err := s.store.Query(ctx, collection,
		map[string]any{"uid": uid},
		docstore.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Entry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeEntry(doc))
	}
	return out, nil
}

func decodeEntry(doc docstore.Doc) domain.Entry {
	entry := domain.Entry{
		ID:        doc.ID,
		ProductID: str(doc.Fields["productId"]),
		Name:      str(doc.Fields["name"]),
		Image:     str(doc.Fields["image"]),
		Category:  str(doc.Fields["category"]),
	}
	if price, ok := doc.Fields["price"].(float64); ok {
		entry.Price = price
	}
	if uid, ok := doc.Fields["uid"].(string); ok {
		entry.UID = &uid
	}
	if created, err := time.Parse(time.RFC3339, str(doc.Fields["createdAt"])); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, str(doc.Fields["updatedAt"])); err == nil {
		entry.UpdatedAt = &updated
	}
	return entry
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
