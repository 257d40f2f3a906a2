package trader

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
	"papertrader/internal/application/service"
	"papertrader/internal/domain"
)

// MarketCalendar gates trading to the exchange session.
type MarketCalendar interface {
	Open(t time.Time) bool
}

// alwaysOpen disables the session gate (config market.gate_enabled=false).
type alwaysOpen struct{}

func (alwaysOpen) Open(time.Time) bool { return true }

func AlwaysOpen() MarketCalendar { return alwaysOpen{} }

type ServiceDeps struct {
	Cycle    *service.CycleService
	Queue    port.SellQueue
	Calendar MarketCalendar

	IdleInterval time.Duration // wait between cycles while the market is open
	ClosedPoll   time.Duration // clock re-check interval while closed
}

// Service is the long-running trading loop: one cycle at a time, an idle
// wait in between, the manual-sell queue drained at each cycle start. The
// surrounding context is the only thing that stops it.
type Service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) *Service {
	if deps.IdleInterval <= 0 {
		deps.IdleInterval = 120 * time.Second
	}
	if deps.ClosedPoll <= 0 {
		deps.ClosedPoll = time.Second
	}
	if deps.Calendar == nil {
		deps.Calendar = AlwaysOpen()
	}
	return &Service{deps: deps}
}

func (s *Service) Run(ctx context.Context) error {
	if s.deps.Cycle == nil {
		return errors.New("no cycle service")
	}

	wasOpen := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := time.Now()
		open := s.deps.Calendar.Open(now)
		if open != wasOpen {
			if open {
				log.Info().Msg("market is open")
			} else {
				log.Info().Msg("market is now closed")
			}
			wasOpen = open
		}
		if !open {
			if err := sleep(ctx, s.deps.ClosedPoll); err != nil {
				return err
			}
			continue
		}

		manual := s.drainQueue(ctx)
		start := time.Now()
		sum, err := s.deps.Cycle.Run(ctx, now, manual)
		switch {
		case errors.Is(err, domain.ErrDataUnavailable):
			log.Warn().Msg("no market data this cycle, retrying after idle interval")
		case err != nil:
			log.Error().Err(err).Msg("cycle failed")
		default:
			log.Info().
				Dur("took", time.Since(start)).
				Float64("cash", sum.Cash).
				Float64("invested", sum.TotalInvested).
				Float64("overall_profit", sum.OverallProfit).
				Bool("complete", sum.Complete()).
				Msg("cycle finished")
		}

		if err := sleep(ctx, s.deps.IdleInterval); err != nil {
			return err
		}
	}
}

func (s *Service) drainQueue(ctx context.Context) []string {
	if s.deps.Queue == nil {
		return nil
	}
	symbols, err := s.deps.Queue.Drain(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("manual sell queue drain failed")
		return nil
	}
	if len(symbols) > 0 {
		log.Info().Strs("symbols", symbols).Msg("manual sell requested")
	}
	return symbols
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
