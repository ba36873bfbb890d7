package app

import (
	"fmt"
	"time"

	"github.com/shophub/storefront/internal/docstore"
	"github.com/shophub/storefront/internal/order/domain"
)

func decodeOrders(docs []docstore.Doc) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := decodeOrder(doc.ID, doc.Fields)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}

func decodeOrder(id string, fields docstore.Fields) (domain.Order, error) {
	order := domain.Order{
		ID:          id,
		UserID:      str(fields["userId"]),
		TotalAmount: num(fields["totalAmount"]),
		Status:      domain.Status(str(fields["status"])),
	}

	created, err := time.Parse(time.RFC3339, str(fields["createdAt"]))
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: bad createdAt: %w", id, err)
	}
	order.CreatedAt = created

	if raw := str(fields["updatedAt"]); raw != "" {
		updated, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return domain.Order{}, fmt.Errorf("order %s: bad updatedAt: %w", id, err)
		}
		order.UpdatedAt = &updated
	}

	if addr, ok := fields["shippingAddress"].(map[string]any); ok {
		order.ShippingAddress = domain.Address{
			Name:    str(addr["name"]),
			Street:  str(addr["street"]),
			City:    str(addr["city"]),
			State:   str(addr["state"]),
			Zip:     str(addr["zip"]),
			Country: str(addr["country"]),
		}
	}

	if items, ok := fields["items"].([]any); ok {
		order.Items = make([]domain.Item, 0, len(items))
		for _, raw := range items {
			m, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			order.Items = append(order.Items, domain.Item{
				ID:         str(m["id"]),
				Name:       str(m["name"]),
				Price:      num(m["price"]),
				Quantity:   int(num(m["quantity"])),
				Image:      str(m["image"]),
				TotalPrice: num(m["totalPrice"]),
			})
		}
	}

	return order, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return 0
}
