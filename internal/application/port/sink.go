package port

import (
	"time"

	"papertrader/internal/domain"
)

// Sink receives the line-oriented cycle report. Implementations own all
// formatting; the core only hands over structured values.
type Sink interface {
	CycleStart(ts time.Time) error
	Event(ev domain.TradeEvent) error
	Summary(sum domain.CycleSummary) error
}
