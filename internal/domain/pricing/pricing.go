// internal/domain/pricing/pricing.go
package pricing

import "math"

// Config holds the flat-rate pricing rules. Monetary values are cents.
type Config struct {
	TaxRate               float64
	FlatShippingFee       int64
	FreeShippingThreshold int64
}

// Line is a single cart or order line
type Line struct {
	UnitPrice int64
	Quantity  int
}

// Totals is the computed price breakdown for a set of lines
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Calculate computes the totals for the given lines.
// Shipping is waived at or above the free-shipping threshold, an empty set
// of lines prices to zero, and Total == Subtotal + Shipping + Tax exactly.
func Calculate(lines []Line, cfg Config) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	var shipping int64
	if subtotal > 0 && subtotal < cfg.FreeShippingThreshold {
		shipping = cfg.FlatShippingFee
	}

	tax := int64(math.Round(float64(subtotal) * cfg.TaxRate))

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
