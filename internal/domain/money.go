package domain

import "github.com/shopspring/decimal"

// Round4 rounds a monetary amount to 4 decimal places. All buy/sell
// threshold comparisons go through this first so that float noise cannot
// flip a decision at the boundary.
func Round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
