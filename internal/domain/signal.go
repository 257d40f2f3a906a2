package domain

import "math"

// Signal is the per-symbol entry signal derived from recent closes. It is
// recomputed fresh each cycle for unowned symbols and never persisted.
type Signal struct {
	Mean          float64
	BuyThreshold  float64
	SellThreshold float64
}

// ComputeSignal takes a chronologically ordered close series and a window
// length, and returns the simple moving average of the first window that
// contains w consecutive valid values, together with the derived entry and
// exit thresholds. A value is valid when it is a finite positive number.
// Returns ErrInsufficientHistory when no such window exists.
func ComputeSignal(closes []float64, w int, entryDiscountPct, profitTakePct float64) (Signal, error) {
	if w <= 0 || len(closes) < w {
		return Signal{}, ErrInsufficientHistory
	}

	run := 0
	sum := 0.0
	for _, c := range closes {
		if !validClose(c) {
			run = 0
			sum = 0
			continue
		}
		run++
		sum += c
		if run == w {
			mean := sum / float64(w)
			return Signal{
				Mean:          mean,
				BuyThreshold:  mean * (1 - entryDiscountPct/100),
				SellThreshold: mean * (1 + profitTakePct/100),
			}, nil
		}
	}
	return Signal{}, ErrInsufficientHistory
}

// ROI returns the percentage return from current to target. ErrZeroPrice
// when current is zero; the caller treats that as ROI 0 and does not buy.
func ROI(current, target float64) (float64, error) {
	if current == 0 {
		return 0, ErrZeroPrice
	}
	return (target - current) / current * 100, nil
}

func validClose(c float64) bool {
	return !math.IsNaN(c) && !math.IsInf(c, 0) && c > 0
}
