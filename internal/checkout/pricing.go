package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/gokulraj121/karikalan-restaurant/internal/cart"
)

// GST is charged at a fixed 5% of the subtotal, not configurable per item.
var gstRate = decimal.NewFromFloat(0.05)

// Totals is the price breakdown of an order. Values are rounded to two
// decimal places exactly once, when they are computed; the same rounded
// values are stored and displayed.
type Totals struct {
	Subtotal float64
	GST      float64
	Total    float64
}

// ComputeTotals derives the totals from a cart snapshot. Unit prices are
// whole currency units, so the subtotal is exact; the GST and total go
// through decimal arithmetic to keep the single canonical rounding point.
func ComputeTotals(lines []cart.Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		lineTotal := decimal.NewFromInt(int64(l.UnitPrice)).Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	gst := subtotal.Mul(gstRate).Round(2)
	total := subtotal.Add(gst).Round(2)

	return Totals{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		GST:      gst.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
