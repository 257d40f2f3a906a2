package domain

import "errors"

// ErrDataUnavailable: the external fetch failed or returned nothing; the
// cycle is skipped and retried, the portfolio is not touched.
var ErrDataUnavailable = errors.New("market data unavailable")

// ErrInsufficientHistory: fewer valid closes than the rolling window needs.
var ErrInsufficientHistory = errors.New("insufficient price history")

// ErrZeroPrice: ROI requested against a zero current price.
var ErrZeroPrice = errors.New("zero current price")

// ErrNotHeld: sell requested for a symbol the portfolio does not hold.
var ErrNotHeld = errors.New("symbol not held")
