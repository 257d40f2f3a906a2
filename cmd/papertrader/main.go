package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/usecase/trader"
	"papertrader/internal/infrastructure/config"
	"papertrader/internal/infrastructure/logger"
	"papertrader/internal/infrastructure/svc"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Setup("info")
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := svc.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialization failed")
	}
	defer sc.Close()

	pf, err := sc.LoadPortfolio()
	if err != nil {
		log.Fatal().Err(err).Msg("load portfolio failed")
	}

	log.Info().
		Str("config", *configPath).
		Str("exchange", cfg.Exchange.Name).
		Int("top_n", cfg.Exchange.TopN).
		Int("window", cfg.Strategy.Window).
		Float64("cash", pf.Cash).
		Int("positions", len(pf.Positions)).
		Msg("papertrader started")

	loop := trader.NewService(sc.BuildTraderDeps(pf))
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("trader loop exited")
	}
}
