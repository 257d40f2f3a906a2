package port

import (
	"context"

	"papertrader/internal/domain"
)

// Journal records trade events and cycle summaries for later inspection.
// Journal failures are operator-visible but never abort a cycle.
type Journal interface {
	RecordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) error
	RecordSummary(ctx context.Context, ts int64, sum domain.CycleSummary) error
	Close() error
}
