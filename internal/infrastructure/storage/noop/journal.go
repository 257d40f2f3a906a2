package noop

import (
	"context"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// Journal discards everything (journal.backend = "none").
type Journal struct{}

func New() *Journal { return &Journal{} }

func (Journal) RecordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) error { return nil }

func (Journal) RecordSummary(ctx context.Context, ts int64, sum domain.CycleSummary) error {
	return nil
}

func (Journal) Close() error { return nil }

var _ port.Journal = Journal{}
