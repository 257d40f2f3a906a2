package composite

import (
	"context"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// Journal fans writes out to several backends; the first error wins but
// every backend still gets the write.
type Journal struct {
	journals []port.Journal
}

func New(journals ...port.Journal) *Journal {
	// nil entries are allowed; filter in constructor for safety
	out := make([]port.Journal, 0, len(journals))
	for _, j := range journals {
		if j != nil {
			out = append(out, j)
		}
	}
	return &Journal{journals: out}
}

func (c *Journal) RecordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) error {
	var firstErr error
	for _, j := range c.journals {
		if err := j.RecordTrade(ctx, ts, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Journal) RecordSummary(ctx context.Context, ts int64, sum domain.CycleSummary) error {
	var firstErr error
	for _, j := range c.journals {
		if err := j.RecordSummary(ctx, ts, sum); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Journal) Close() error {
	var firstErr error
	for i := len(c.journals) - 1; i >= 0; i-- {
		if err := c.journals[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ port.Journal = (*Journal)(nil)
