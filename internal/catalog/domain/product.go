package domain

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the normalized shape every other context consumes. Instances
// are immutable within a session; a re-fetch produces fresh ones.
type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      int     `json:"discount"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	Stock         int     `json:"stock"`
	Rating        Rating  `json:"rating"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

// RawProduct is the catalog collaborator's wire shape, pre-normalization.
// Rating and Stock are optional on the wire; the normalizer substitutes
// defaults when they are missing.
type RawProduct struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}
