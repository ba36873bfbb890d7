package domain

// ProductRef carries the product fields the ledger snapshots at first add.
// The unit price is frozen here; later catalog price changes do not touch
// existing line items.
type ProductRef struct {
	ID    string
	Title string
	Price float64
	Image string
}

type LineItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// Ledger is the session-scoped cart aggregate. Items keep insertion order;
// TotalQuantity and TotalAmount are always the exact fold over Items and are
// never set independently.
type Ledger struct {
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalAmount   float64    `json:"totalAmount"`
}

// Add increments the existing line item for the product or appends a new one
// with quantity 1.
func (l *Ledger) Add(p ProductRef) {
	for i := range l.Items {
		if l.Items[i].ID == p.ID {
			l.Items[i].Quantity++
			l.Items[i].TotalPrice = l.Items[i].Price * float64(l.Items[i].Quantity)
			l.recompute()
			return
		}
	}

	l.Items = append(l.Items, LineItem{
		ID:         p.ID,
		Name:       p.Title,
		Price:      p.Price,
		Image:      p.Image,
		Quantity:   1,
		TotalPrice: p.Price,
	})
	l.recompute()
}

// Remove decrements the line item's quantity; at zero the line item is
// deleted entirely. Unknown ids are a no-op.
func (l *Ledger) Remove(productID string) {
	for i := range l.Items {
		if l.Items[i].ID != productID {
			continue
		}
		l.Items[i].Quantity--
		if l.Items[i].Quantity <= 0 {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
		} else {
			l.Items[i].TotalPrice = l.Items[i].Price * float64(l.Items[i].Quantity)
		}
		l.recompute()
		return
	}
}

// RemoveAll deletes the line item regardless of quantity. Unknown ids are a
// no-op.
func (l *Ledger) RemoveAll(productID string) {
	for i := range l.Items {
		if l.Items[i].ID == productID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			l.recompute()
			return
		}
	}
}

// Clear empties the ledger and zeroes the aggregates.
func (l *Ledger) Clear() {
	l.Items = nil
	l.recompute()
}

// recompute folds the aggregates from scratch after every mutation. Carts
// are small; a full fold cannot drift the way incremental updates can, so
// keep it this way.
func (l *Ledger) recompute() {
	qty := 0
	amount := 0.0
	for _, it := range l.Items {
		qty += it.Quantity
		amount += it.TotalPrice
	}
	l.TotalQuantity = qty
	l.TotalAmount = amount
}

// Clone returns a deep copy, used to snapshot state before a persisted
// mutation so a failed write can roll back.
func (l Ledger) Clone() Ledger {
	out := l
	out.Items = make([]LineItem, len(l.Items))
	copy(out.Items, l.Items)
	return out
}
