package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shophub/storefront/internal/docstore"
	identity "github.com/shophub/storefront/internal/identity/domain"
	"github.com/shophub/storefront/internal/order/domain"
)

const collection = "orders"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("order not found")
)

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

type PlaceOrderInput struct {
	UserID          string
	Items           []domain.Item
	ShippingAddress domain.Address
	TotalAmount     float64
}

// PlaceOrder materializes a cart snapshot into a persisted order. Items are
// reduced to their snapshot fields and the payload is sanitized of unset
// markers before it crosses into the store. Clearing the cart afterwards is
// the caller's job, not this one's.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if in.TotalAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: negative total", ErrInvalidInput)
	}
	for i, it := range in.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d has quantity %d", ErrInvalidInput, i, it.Quantity)
		}
	}

	userID := in.UserID
	if userID == "" {
		userID = identity.GuestID
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
		TotalAmount:     in.TotalAmount,
		Status:          domain.StatusPending,
		CreatedAt:       s.now(),
	}

	payload := docstore.SanitizeFields(orderFields(order))
	if err := s.store.Upsert(ctx, collection, order.ID, payload, false); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// GetUserOrders lists a user's orders, newest first.
func (s *Service) GetUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		userID = identity.GuestID
	}

	docs, err := s.store.Query(ctx, collection,
		map[string]any{"userId": userID},
		docstore.OrderBy{Field: "createdAt", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeOrders(docs)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	fields, err := s.store.Get(ctx, collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return decodeOrder(id, fields)
}

// UpdateStatus advances an order's status label. Items and totals stay
// untouched: the write is a merge patch of status and updatedAt only.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	if _, err := s.GetOrder(ctx, id); err != nil {
		return err
	}

	return s.store.Upsert(ctx, collection, id, docstore.Fields{
		"status":    string(status),
		"updatedAt": s.now().Format(time.RFC3339),
	}, true)
}

// ListAll returns every order, newest first, for the admin dashboard.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	docs, err := s.store.Query(ctx, collection, nil,
		docstore.OrderBy{Field: "createdAt", Desc: true})
	if err != nil {
		return nil, err
	}
	return decodeOrders(docs)
}

// orderFields flattens an order into a document payload. Optional values
// that are absent become the unset marker here and are stripped by
// sanitization, never persisted.
func orderFields(o domain.Order) docstore.Fields {
	items := make([]any, len(o.Items))
	for i, it := range o.Items {
		image := any(it.Image)
		if it.Image == "" {
			image = docstore.Unset
		}
		items[i] = map[string]any{
			"id":         it.ID,
			"name":       it.Name,
			"price":      it.Price,
			"quantity":   it.Quantity,
			"image":      image,
			"totalPrice": it.TotalPrice,
		}
	}

	return docstore.Fields{
		"userId": o.UserID,
		"items":  items,
		"shippingAddress": map[string]any{
			"name":    o.ShippingAddress.Name,
			"street":  o.ShippingAddress.Street,
			"city":    o.ShippingAddress.City,
			"state":   o.ShippingAddress.State,
			"zip":     o.ShippingAddress.Zip,
			"country": o.ShippingAddress.Country,
		},
		"totalAmount": o.TotalAmount,
		"status":      string(o.Status),
		"createdAt":   o.CreatedAt.Format(time.RFC3339),
	}
}
