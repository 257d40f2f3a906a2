package svc

import (
	"context"
	"fmt"
	"os"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
	"papertrader/internal/application/service"
	"papertrader/internal/application/usecase/trader"
	"papertrader/internal/domain"
	"papertrader/internal/infrastructure/config"
	"papertrader/internal/infrastructure/marketclock"
	"papertrader/internal/infrastructure/marketdata/chart"
	"papertrader/internal/infrastructure/marketdata/screener"
	memoryqueue "papertrader/internal/infrastructure/sellqueue/memory"
	redisqueue "papertrader/internal/infrastructure/sellqueue/redis"
	stdinreader "papertrader/internal/infrastructure/sellqueue/stdin"
	"papertrader/internal/infrastructure/storage/composite"
	"papertrader/internal/infrastructure/storage/jsonfile"
	noopjournal "papertrader/internal/infrastructure/storage/noop"
	postgresjournal "papertrader/internal/infrastructure/storage/postgres"
	sqlitejournal "papertrader/internal/infrastructure/storage/sqlite"
	"papertrader/internal/interfaces/console"
)

// ServiceContext owns all initialized dependencies. It is the single
// startup entry point: everything is built here, in dependency order, and
// torn down in reverse on Close.
type ServiceContext struct {
	Ctx    context.Context
	Config *config.Config

	store       *jsonfile.Store
	journal     port.Journal
	queue       port.SellQueue
	calendar    trader.MarketCalendar
	redisClient *redisclient.Client

	Sink port.Sink

	closerChain []func() error
}

func New(ctx context.Context, cfg *config.Config) (*ServiceContext, error) {
	sc := &ServiceContext{
		Ctx:         ctx,
		Config:      cfg,
		Sink:        console.NewSink(),
		closerChain: make([]func() error, 0),
	}

	if err := sc.initializeComponents(); err != nil {
		_ = sc.Close()
		return nil, err
	}
	return sc, nil
}

func (sc *ServiceContext) initializeComponents() error {
	sc.store = jsonfile.New(sc.Config.Portfolio.StatePath, sc.Config.Portfolio.InitialCash)

	if err := sc.initJournal(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageInitFailed, err)
	}
	if err := sc.initSellQueue(); err != nil {
		return fmt.Errorf("%w: %v", ErrQueueInitFailed, err)
	}
	if err := sc.initCalendar(); err != nil {
		return err
	}

	log.Info().
		Str("journal", sc.Config.Journal.Backend).
		Str("sellqueue", sc.Config.SellQueue.Backend).
		Bool("market_gate", sc.Config.Market.GateEnabled).
		Msg("components initialized")
	return nil
}

func (sc *ServiceContext) initJournal() error {
	journals := make([]port.Journal, 0, 2)
	for _, backend := range config.JournalBackends(sc.Config) {
		switch backend {
		case "sqlite":
			j, err := sqlitejournal.New(sc.Config.Journal.SQLitePath)
			if err != nil {
				return err
			}
			journals = append(journals, j)
			sc.closerChain = append(sc.closerChain, func() error {
				log.Info().Msg("closing sqlite journal")
				return j.Close()
			})
			log.Info().Str("path", sc.Config.Journal.SQLitePath).Msg("sqlite journal initialized")

		case "postgres":
			j, err := postgresjournal.New(sc.Config.Journal.PostgresDSN)
			if err != nil {
				return err
			}
			journals = append(journals, j)
			sc.closerChain = append(sc.closerChain, func() error {
				log.Info().Msg("closing postgres journal")
				return j.Close()
			})
			log.Info().Msg("postgres journal initialized")
		}
	}

	switch len(journals) {
	case 0:
		sc.journal = noopjournal.New()
	case 1:
		sc.journal = journals[0]
	default:
		sc.journal = composite.New(journals...)
	}
	return nil
}

func (sc *ServiceContext) initSellQueue() error {
	switch sc.Config.SellQueue.Backend {
	case "redis":
		rdb := redisclient.NewClient(&redisclient.Options{
			Addr:     sc.Config.SellQueue.Redis.Addr,
			Password: sc.Config.SellQueue.Redis.Password,
			DB:       sc.Config.SellQueue.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(sc.Ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("redis ping failed: %w", err)
		}

		sc.redisClient = rdb
		sc.queue = redisqueue.New(rdb, sc.Config.SellQueue.Redis.Key)
		sc.closerChain = append(sc.closerChain, func() error {
			log.Info().Msg("closing redis connection")
			return rdb.Close()
		})
		log.Info().
			Str("addr", sc.Config.SellQueue.Redis.Addr).
			Str("key", sc.Config.SellQueue.Redis.Key).
			Msg("redis sell queue initialized")

	default:
		q := memoryqueue.New()
		sc.queue = q
		reader := stdinreader.New(os.Stdin, q)
		go reader.Run(sc.Ctx)
		log.Info().Msg("stdin sell input ready (comma-separated symbols + enter)")
	}
	return nil
}

func (sc *ServiceContext) initCalendar() error {
	if !sc.Config.Market.GateEnabled {
		sc.calendar = trader.AlwaysOpen()
		return nil
	}
	cal, err := marketclock.New(sc.Config.Market.Timezone, sc.Config.Market.Open, sc.Config.Market.Close)
	if err != nil {
		return err
	}
	sc.calendar = cal
	return nil
}

// LoadPortfolio pulls the persisted portfolio (or a fresh one) once at
// startup.
func (sc *ServiceContext) LoadPortfolio() (*domain.Portfolio, error) {
	return service.LoadPortfolio(sc.Ctx, sc.store)
}

// BuildTraderDeps assembles the full dependency set for the trader loop.
func (sc *ServiceContext) BuildTraderDeps(pf *domain.Portfolio) trader.ServiceDeps {
	cfg := sc.Config

	cycle := service.NewCycleService(service.CycleDeps{
		Symbols: screener.New(cfg.Exchange.Name, cfg.Exchange.ScreenerURL),
		History: chart.New(cfg.Exchange.ChartURL),
		Repo:    sc.store,
		Journal: sc.journal,
		Sink:    sc.Sink,
		Policy: domain.Policy{
			EntryDiscountPct: cfg.Strategy.EntryDiscountPct,
			ProfitTakePct:    cfg.Strategy.ProfitTakePct,
			StopLossPct:      cfg.Strategy.StopLossPct,
			AllocationPct:    cfg.Strategy.AllocationPct,
			MinLot:           cfg.Strategy.MinLot,
		},
		Window:            cfg.Strategy.Window,
		TopN:              cfg.Exchange.TopN,
		InitialInvestment: cfg.Portfolio.InitialCash,
	}, pf)

	return trader.ServiceDeps{
		Cycle:        cycle,
		Queue:        sc.queue,
		Calendar:     sc.calendar,
		IdleInterval: time.Duration(cfg.App.IdleSeconds) * time.Second,
	}
}

// Close releases resources in reverse initialization order.
func (sc *ServiceContext) Close() error {
	for i := len(sc.closerChain) - 1; i >= 0; i-- {
		if err := sc.closerChain[i](); err != nil {
			log.Error().Err(err).Msg("error closing resource")
		}
	}
	return nil
}
