package port

import (
	"context"

	"papertrader/internal/domain"
)

// PortfolioRepository persists the single portfolio across runs.
type PortfolioRepository interface {
	// Load returns the persisted portfolio, or a fresh one with the
	// configured initial cash when no usable state exists.
	Load(ctx context.Context) (*domain.Portfolio, error)

	// Save writes cash and all positions to durable storage. Writers
	// must replace atomically (temp file + rename); there is no
	// transactional guarantee beyond that.
	Save(ctx context.Context, pf *domain.Portfolio) error
}
