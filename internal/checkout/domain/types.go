package domain

// QuoteLine is a priced cart line enriched with current catalog data.
type QuoteLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	InStock   bool    `json:"inStock"`
}

// Quote is the priced view of a cart: its lines plus derived totals.
type Quote struct {
	Lines  []QuoteLine `json:"lines"`
	Totals Totals      `json:"totals"`
}
