package port

import "context"

// Candle is one time-indexed close observation.
type Candle struct {
	Ts    int64 // unix ms
	Close float64
}

// SymbolSource returns the exchange ticker list ranked descending by
// market capitalization. May return fewer than topN; an empty result means
// no data this cycle, never an excuse to crash.
type SymbolSource interface {
	RankedSymbols(ctx context.Context, topN int) ([]string, error)
}

// HistorySource returns recent close history per symbol, chronologically
// ordered. Symbols without data are simply absent from the map.
type HistorySource interface {
	PriceHistory(ctx context.Context, symbols []string, window int) (map[string][]Candle, error)
}
