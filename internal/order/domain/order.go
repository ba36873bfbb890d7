package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s belongs to the fixed label set.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Address struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Item is the immutable per-line snapshot taken at order time. Only these
// six fields survive materialization; everything else on a cart line is
// dropped.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image"`
	TotalPrice float64 `json:"totalPrice"`
}

// Order is persisted once at checkout; afterwards only Status and UpdatedAt
// may change.
type Order struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Items           []Item     `json:"items"`
	ShippingAddress Address    `json:"shippingAddress"`
	TotalAmount     float64    `json:"totalAmount"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}
