package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// CycleDeps wires everything one refresh cycle needs.
type CycleDeps struct {
	Symbols port.SymbolSource
	History port.HistorySource
	Repo    port.PortfolioRepository
	Journal port.Journal
	Sink    port.Sink

	Policy            domain.Policy
	Window            int
	TopN              int
	InitialInvestment float64
}

// CycleService runs one refresh cycle at a time against the single
// in-process portfolio: fetch ranked symbols, fetch history, decide per
// symbol, aggregate the summary, persist, report. It is not safe for
// concurrent use; the trader loop is its only caller.
type CycleService struct {
	deps   CycleDeps
	engine *domain.Engine
	pf     *domain.Portfolio
}

func NewCycleService(deps CycleDeps, pf *domain.Portfolio) *CycleService {
	return &CycleService{
		deps:   deps,
		engine: domain.NewEngine(deps.Policy),
		pf:     pf,
	}
}

// Portfolio exposes the live portfolio for reporting and tests.
func (s *CycleService) Portfolio() *domain.Portfolio { return s.pf }

// Run executes one cycle. The manual slice is the drained sell queue;
// manual overrides apply only to symbols that are owned and priced this
// cycle. A data-unavailable cycle returns domain.ErrDataUnavailable with
// the portfolio untouched; per-symbol failures skip that symbol only.
func (s *CycleService) Run(ctx context.Context, now time.Time, manual []string) (domain.CycleSummary, error) {
	symbols, err := s.deps.Symbols.RankedSymbols(ctx, s.deps.TopN)
	if err != nil {
		log.Warn().Err(err).Msg("ranked symbol fetch failed")
		return domain.CycleSummary{}, domain.ErrDataUnavailable
	}
	if len(symbols) == 0 {
		return domain.CycleSummary{}, domain.ErrDataUnavailable
	}

	history, err := s.deps.History.PriceHistory(ctx, symbols, s.deps.Window)
	if err != nil {
		log.Warn().Err(err).Msg("price history fetch failed")
		return domain.CycleSummary{}, domain.ErrDataUnavailable
	}
	if len(history) == 0 {
		return domain.CycleSummary{}, domain.ErrDataUnavailable
	}

	_ = s.deps.Sink.CycleStart(now)

	manualSet := make(map[string]bool, len(manual))
	for _, sym := range manual {
		manualSet[sym] = true
	}

	var sum domain.CycleSummary
	seen := make(map[string]bool, len(s.pf.Positions))
	ts := now.UnixMilli()

	for _, symbol := range symbols {
		candles, ok := history[symbol]
		if !ok || len(candles) == 0 {
			continue
		}
		closes := make([]float64, len(candles))
		for i, c := range candles {
			closes[i] = c.Close
		}
		latest := closes[len(closes)-1]

		if s.pf.Holds(symbol) {
			seen[symbol] = true
			ev, evalErr := s.engine.EvaluateOwned(s.pf, symbol, latest, manualSet[symbol])
			if evalErr != nil {
				log.Error().Err(evalErr).Str("symbol", symbol).Msg("owned evaluation failed, symbol skipped")
				continue
			}
			_ = s.deps.Sink.Event(ev)
			if ev.Action == domain.ActionSell {
				s.recordTrade(ctx, ts, ev)
				// persist immediately on sell so a crash cannot
				// resurrect a closed position
				s.persist(ctx)
			} else {
				sum.TotalProfit += ev.Profit
				sum.TotalInvested += ev.BuyPrice * float64(ev.Quantity)
			}
			continue
		}

		sig, sigErr := domain.ComputeSignal(closes, s.deps.Window, s.deps.Policy.EntryDiscountPct, s.deps.Policy.ProfitTakePct)
		if sigErr != nil {
			if !errors.Is(sigErr, domain.ErrInsufficientHistory) {
				log.Warn().Err(sigErr).Str("symbol", symbol).Msg("signal computation failed")
			}
			continue
		}
		if ev, bought := s.engine.EvaluateUnowned(s.pf, symbol, latest, sig); bought {
			_ = s.deps.Sink.Event(ev)
			s.recordTrade(ctx, ts, ev)
		}
	}

	for _, symbol := range s.pf.Symbols() {
		if !seen[symbol] {
			sum.Missing = append(sum.Missing, symbol)
		}
	}
	sort.Strings(sum.Missing)

	sum.Cash = s.pf.Cash
	sum.OverallProfit = s.pf.Cash + sum.TotalInvested + sum.TotalProfit - s.deps.InitialInvestment

	s.persist(ctx)
	if err := s.deps.Journal.RecordSummary(ctx, ts, sum); err != nil {
		log.Error().Err(err).Msg("journal summary failed")
	}
	_ = s.deps.Sink.Summary(sum)

	return sum, nil
}

// persist saves the portfolio; a write failure is surfaced to the operator
// and the in-memory state is kept for the next attempt.
func (s *CycleService) persist(ctx context.Context) {
	if err := s.deps.Repo.Save(ctx, s.pf); err != nil {
		log.Error().Err(err).Msg("portfolio save failed, in-memory state retained")
	}
}

func (s *CycleService) recordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) {
	if err := s.deps.Journal.RecordTrade(ctx, ts, ev); err != nil {
		log.Error().Err(err).Str("symbol", ev.Symbol).Msg("journal trade failed")
	}
}

// LoadPortfolio pulls the persisted portfolio through the repository; a
// missing or unreadable state file comes back as a fresh portfolio, which
// is a recovery path rather than an error.
func LoadPortfolio(ctx context.Context, repo port.PortfolioRepository) (*domain.Portfolio, error) {
	pf, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load portfolio: %w", err)
	}
	return pf, nil
}
