package domain

import "math"

const (
	// FreeShippingThreshold is exclusive: a subtotal of exactly 50 still
	// pays the flat fee.
	FreeShippingThreshold = 50.0
	FlatShippingFee       = 5.99
	TaxRate               = 0.10
)

// Totals carries full-precision monetary quantities. Round only at the
// display boundary; repeated recomputation must not compound rounding error.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals derives shipping, tax and grand total from a cart subtotal.
func ComputeTotals(subtotal float64) Totals {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	tax := subtotal * TaxRate

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal + shipping + tax,
	}
}

// Rounded returns a copy with every amount rounded to two decimals, for
// presentation.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal:   Round2(t.Subtotal),
		Shipping:   Round2(t.Shipping),
		Tax:        Round2(t.Tax),
		GrandTotal: Round2(t.GrandTotal),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
