package domain

import "math"

// Position is an owned holding. Prices are stored rounded to 4 decimal
// places; the sell price is the take-profit target frozen at entry.
type Position struct {
	Symbol    string  `json:"-"`
	BuyPrice  float64 `json:"buyPrice"`
	SellPrice float64 `json:"sellPrice"`
	Quantity  int64   `json:"quantity"`
}

// Portfolio is the simulated account: free cash plus one position per
// symbol. It is the sole owner of position lifetime; positions are created
// by Buy and removed by Sell, never shared.
type Portfolio struct {
	Cash      float64             `json:"cash"`
	Positions map[string]Position `json:"positions"`
}

// NewPortfolio returns a fresh portfolio holding only the initial cash.
func NewPortfolio(initialCash float64) *Portfolio {
	return &Portfolio{
		Cash:      initialCash,
		Positions: make(map[string]Position),
	}
}

// Holds reports whether symbol currently has an open position.
func (p *Portfolio) Holds(symbol string) bool {
	_, ok := p.Positions[symbol]
	return ok
}

// Buy opens (or replaces) a position at price with the given take-profit
// target. The lot is allocationPct of current cash, floored to whole
// shares; the buy proceeds only when that lot strictly exceeds minLot.
// Returns the amount spent and whether the buy executed. Cash can never go
// negative: the spend is bounded by allocationPct of cash.
func (p *Portfolio) Buy(symbol string, price, sellTarget, allocationPct float64, minLot int64) (spent float64, ok bool) {
	px := Round4(price)
	if px <= 0 {
		return 0, false
	}
	qty := int64(math.Floor(allocationPct / 100 * p.Cash / px))
	if qty <= minLot {
		return 0, false
	}
	if p.Positions == nil {
		p.Positions = make(map[string]Position)
	}
	p.Positions[symbol] = Position{
		Symbol:    symbol,
		BuyPrice:  px,
		SellPrice: Round4(sellTarget),
		Quantity:  qty,
	}
	spent = float64(qty) * px
	p.Cash -= spent
	return spent, true
}

// Sell closes the position at price and returns the realized profit.
// ErrNotHeld when the symbol has no open position; callers guard with
// Holds before invoking.
func (p *Portfolio) Sell(symbol string, price float64) (realized float64, err error) {
	pos, held := p.Positions[symbol]
	if !held {
		return 0, ErrNotHeld
	}
	px := Round4(price)
	realized = (px - pos.BuyPrice) * float64(pos.Quantity)
	p.Cash += px * float64(pos.Quantity)
	delete(p.Positions, symbol)
	return realized, nil
}

// MarkToMarket values the position at the current price without mutating
// anything. Returns the unrealized profit and the capital invested at entry.
func (p *Portfolio) MarkToMarket(symbol string, price float64) (unrealized, invested float64, err error) {
	pos, held := p.Positions[symbol]
	if !held {
		return 0, 0, ErrNotHeld
	}
	px := Round4(price)
	unrealized = (px - pos.BuyPrice) * float64(pos.Quantity)
	invested = pos.BuyPrice * float64(pos.Quantity)
	return unrealized, invested, nil
}

// Symbols returns the currently held symbols in no particular order.
func (p *Portfolio) Symbols() []string {
	out := make([]string, 0, len(p.Positions))
	for sym := range p.Positions {
		out = append(out, sym)
	}
	return out
}
