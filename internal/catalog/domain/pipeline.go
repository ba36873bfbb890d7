package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the sentinel category that passes every product.
const CategoryAll = "all"

type Criteria struct {
	Category string
	Query    string
}

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortRating    SortKey = "rating"
)

// Filter narrows products by category (case-insensitive exact match) and
// free-text query (case-insensitive substring over title, description and
// category). The two compose by AND. Empty criteria pass everything.
func Filter(products []Product, c Criteria) []Product {
	category := strings.ToLower(strings.TrimSpace(c.Category))
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != CategoryAll &&
			strings.ToLower(p.Category) != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// Sort returns a new ordering of products by the given key. The sort is
// stable and never mutates its input; an unknown or default key preserves
// the input order.
func Sort(products []Product, key SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating.Rate > out[j].Rating.Rate })
	}

	return out
}
