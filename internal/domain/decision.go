package domain

// Policy holds the decision parameters. Percentages are expressed as whole
// numbers (3 means 3%).
type Policy struct {
	EntryDiscountPct float64 // buy when price < mean * (1 - this)
	ProfitTakePct    float64 // sell target frozen at entry: mean * (1 + this)
	StopLossPct      float64 // sell when price <= buyPrice * (1 - this)
	AllocationPct    float64 // fraction of cash committed per buy
	MinLot           int64   // lot must strictly exceed this share count
}

// DefaultPolicy mirrors the stock settings: 5% entry discount, 3% profit
// take, 10% stop loss, 25% allocation, lots above 49 shares.
func DefaultPolicy() Policy {
	return Policy{
		EntryDiscountPct: 5,
		ProfitTakePct:    3,
		StopLossPct:      10,
		AllocationPct:    25,
		MinLot:           49,
	}
}

// Engine applies the per-symbol buy/sell policy against one portfolio.
// It is evaluated once per symbol per cycle and owns no state of its own.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// EvaluateOwned runs the exit rules for a held symbol. Manual sells take
// priority and suppress the automatic rules for the cycle; otherwise the
// stored take-profit target and the stop-loss drawdown are checked, in that
// order. When nothing fires the position is held and marked to market.
func (e *Engine) EvaluateOwned(pf *Portfolio, symbol string, price float64, manual bool) (TradeEvent, error) {
	pos, held := pf.Positions[symbol]
	if !held {
		return TradeEvent{}, ErrNotHeld
	}
	px := Round4(price)

	reason := SellNone
	switch {
	case manual:
		reason = SellManual
	case px >= pos.SellPrice:
		reason = SellTakeProfit
	case px <= Round4(pos.BuyPrice*(1-e.policy.StopLossPct/100)):
		reason = SellStopLoss
	}

	if reason != SellNone {
		realized, err := pf.Sell(symbol, price)
		if err != nil {
			return TradeEvent{}, err
		}
		return TradeEvent{
			Symbol:   symbol,
			Action:   ActionSell,
			Reason:   reason,
			Price:    px,
			Quantity: pos.Quantity,
			Profit:   realized,
			BuyPrice: pos.BuyPrice,
		}, nil
	}

	unrealized, _, err := pf.MarkToMarket(symbol, price)
	if err != nil {
		return TradeEvent{}, err
	}
	return TradeEvent{
		Symbol:   symbol,
		Action:   ActionHold,
		Price:    px,
		Quantity: pos.Quantity,
		Profit:   unrealized,
		BuyPrice: pos.BuyPrice,
	}, nil
}

// EvaluateUnowned runs the entry rule for a symbol without a position.
// A zero current price makes the ROI incomputable; the buy is suppressed
// rather than attempted. Returns ok=false when no event was produced
// (price above threshold, or the lot-size/cash check rejected the buy).
func (e *Engine) EvaluateUnowned(pf *Portfolio, symbol string, price float64, sig Signal) (TradeEvent, bool) {
	px := Round4(price)
	if px >= Round4(sig.BuyThreshold) {
		return TradeEvent{}, false
	}
	roi, err := ROI(px, sig.SellThreshold)
	if err != nil {
		// zero price: InvalidDecision, no buy this cycle
		return TradeEvent{}, false
	}
	spent, ok := pf.Buy(symbol, price, sig.SellThreshold, e.policy.AllocationPct, e.policy.MinLot)
	if !ok {
		return TradeEvent{}, false
	}
	pos := pf.Positions[symbol]
	return TradeEvent{
		Symbol:     symbol,
		Action:     ActionBuy,
		Price:      px,
		Quantity:   pos.Quantity,
		SellTarget: pos.SellPrice,
		ROI:        roi,
		Spent:      spent,
		Remaining:  pf.Cash,
	}, true
}
