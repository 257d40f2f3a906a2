package domain

// Action is what the engine decided for a symbol this cycle.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionSell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// SellReason distinguishes why a position was closed.
type SellReason int

const (
	SellNone SellReason = iota
	SellManual
	SellTakeProfit
	SellStopLoss
)

func (r SellReason) String() string {
	switch r {
	case SellManual:
		return "manual"
	case SellTakeProfit:
		return "take-profit"
	case SellStopLoss:
		return "stop-loss"
	default:
		return ""
	}
}

// TradeEvent is the human-readable projection of one decision. It is
// display/journal material, not state.
type TradeEvent struct {
	Symbol   string
	Action   Action
	Reason   SellReason
	Price    float64
	Quantity int64

	// Buy fields.
	SellTarget float64
	ROI        float64
	Spent      float64
	Remaining  float64

	// Sell / hold fields.
	Profit   float64
	BuyPrice float64
}

// CycleSummary aggregates the portfolio view at the end of one cycle.
// Overall profit is measured against the initial investment baseline.
// It is recomputed every cycle and never persisted on its own.
type CycleSummary struct {
	TotalProfit   float64
	TotalInvested float64
	Cash          float64
	OverallProfit float64

	// Owned symbols absent from this cycle's price batch. A non-empty
	// list marks the summary as incomplete; the positions themselves
	// stay in the portfolio.
	Missing []string
}

// Complete reports whether every owned symbol was priced this cycle.
func (s CycleSummary) Complete() bool {
	return len(s.Missing) == 0
}
