package domain

import "time"

// CompositeID is the stable document id for one (owner, product) pair,
// which is what makes the add path an idempotent upsert.
func CompositeID(ownerID, productID string) string {
	return ownerID + "_" + productID
}

// ProductInfo is the display data copied into a favorite entry.
type ProductInfo struct {
	ProductID string
	Name      string
	Price     float64
	Image     string
	Category  string
}

// Entry is one persisted favorite. UID is nil for guest owners; the guest
// sentinel appears only inside the composite id.
type Entry struct {
	ID        string     `json:"id"`
	ProductID string     `json:"productId"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Image     string     `json:"image"`
	Category  string     `json:"category"`
	UID       *string    `json:"uid"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
