package domain

import (
	"math"
	"math/rand"
	"strconv"
)

// Display-only synthetics. The upstream catalog carries no discount or
// inventory data, so these stand in for a real pricing/inventory source;
// none of them feed back into the authoritative unit price.
const (
	defaultRatingRate  = 4.0
	defaultRatingCount = 100

	originalPriceMarkup = 1.2
	displayDiscount     = 17

	stockFloor = 10
	stockSpan  = 50
)

// Normalize converts a raw catalog record into the internal product shape.
// Total for any well-formed record: missing optional fields get defaults.
func Normalize(raw RawProduct) Product {
	rating := Rating{Rate: defaultRatingRate, Count: defaultRatingCount}
	if raw.Rating != nil {
		rating = *raw.Rating
	}

	stock := stockFloor + rand.Intn(stockSpan)
	if raw.Stock != nil {
		stock = *raw.Stock
	}

	return Product{
		ID:            strconv.FormatInt(raw.ID, 10),
		Title:         raw.Title,
		Description:   raw.Description,
		Price:         raw.Price,
		OriginalPrice: math.Round(raw.Price * originalPriceMarkup),
		Discount:      displayDiscount,
		Category:      raw.Category,
		Image:         raw.Image,
		Stock:         stock,
		Rating:        rating,
	}
}

// NormalizeAll maps Normalize element-wise, preserving order.
func NormalizeAll(raws []RawProduct) []Product {
	out := make([]Product, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}
