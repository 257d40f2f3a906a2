package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App struct {
		IdleSeconds int    `toml:"idle_seconds"`
		LogLevel    string `toml:"log_level"`
	} `toml:"app"`

	Exchange struct {
		Name        string `toml:"name"` // nasdaq | nyse | canada
		TopN        int    `toml:"top_n"`
		ScreenerURL string `toml:"screener_url"` // optional override
		ChartURL    string `toml:"chart_url"`    // optional override
	} `toml:"exchange"`

	Strategy struct {
		Window           int     `toml:"window"`
		EntryDiscountPct float64 `toml:"entry_discount_pct"`
		ProfitTakePct    float64 `toml:"profit_take_pct"`
		StopLossPct      float64 `toml:"stop_loss_pct"`
		AllocationPct    float64 `toml:"allocation_pct"`
		MinLot           int64   `toml:"min_lot"`
	} `toml:"strategy"`

	Portfolio struct {
		InitialCash float64 `toml:"initial_cash"`
		StatePath   string  `toml:"state_path"`
	} `toml:"portfolio"`

	Journal struct {
		// Backend is one of sqlite, postgres, none, or a comma-separated
		// combination ("sqlite,postgres" journals to both).
		Backend     string `toml:"backend"`
		SQLitePath  string `toml:"sqlite_path"`
		PostgresDSN string `toml:"postgres_dsn"`
	} `toml:"journal"`

	SellQueue struct {
		Backend string `toml:"backend"` // stdin | redis

		Redis struct {
			Addr     string `toml:"addr"`
			Password string `toml:"password"`
			DB       int    `toml:"db"`
			Key      string `toml:"key"`
		} `toml:"redis"`
	} `toml:"sellqueue"`

	Market struct {
		GateEnabled bool   `toml:"gate_enabled"`
		Timezone    string `toml:"timezone"`
		Open        string `toml:"open"`  // "09:30"
		Close       string `toml:"close"` // "16:00"
	} `toml:"market"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.IdleSeconds <= 0 {
		cfg.App.IdleSeconds = 120
	}
	if strings.TrimSpace(cfg.App.LogLevel) == "" {
		cfg.App.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.Exchange.Name) == "" {
		cfg.Exchange.Name = "nasdaq"
	}
	if cfg.Exchange.TopN <= 0 {
		cfg.Exchange.TopN = 100
	}
	if cfg.Strategy.Window <= 0 {
		cfg.Strategy.Window = 5
	}
	if cfg.Strategy.EntryDiscountPct <= 0 {
		cfg.Strategy.EntryDiscountPct = 5
	}
	if cfg.Strategy.ProfitTakePct <= 0 {
		cfg.Strategy.ProfitTakePct = 3
	}
	if cfg.Strategy.StopLossPct <= 0 {
		cfg.Strategy.StopLossPct = 10
	}
	if cfg.Strategy.AllocationPct <= 0 {
		cfg.Strategy.AllocationPct = 25
	}
	if cfg.Strategy.MinLot <= 0 {
		cfg.Strategy.MinLot = 49
	}
	if cfg.Portfolio.InitialCash <= 0 {
		cfg.Portfolio.InitialCash = 5000
	}
	if strings.TrimSpace(cfg.Portfolio.StatePath) == "" {
		cfg.Portfolio.StatePath = "data/portfolio.json"
	}
	if strings.TrimSpace(cfg.Journal.Backend) == "" {
		cfg.Journal.Backend = "sqlite"
	}
	if strings.TrimSpace(cfg.Journal.SQLitePath) == "" {
		cfg.Journal.SQLitePath = "data/journal.db"
	}
	if strings.TrimSpace(cfg.SellQueue.Backend) == "" {
		cfg.SellQueue.Backend = "stdin"
	}
	if strings.TrimSpace(cfg.SellQueue.Redis.Key) == "" {
		cfg.SellQueue.Redis.Key = "papertrader:sells"
	}
	if strings.TrimSpace(cfg.Market.Timezone) == "" {
		cfg.Market.Timezone = "America/New_York"
	}
	if strings.TrimSpace(cfg.Market.Open) == "" {
		cfg.Market.Open = "09:30"
	}
	if strings.TrimSpace(cfg.Market.Close) == "" {
		cfg.Market.Close = "16:00"
	}
}

func validate(cfg *Config) error {
	cfg.Exchange.Name = strings.ToLower(strings.TrimSpace(cfg.Exchange.Name))
	switch cfg.Exchange.Name {
	case "nasdaq", "nyse", "canada":
	default:
		return fmt.Errorf("exchange.name %q not supported (nasdaq, nyse, canada)", cfg.Exchange.Name)
	}

	if cfg.Strategy.AllocationPct > 100 {
		return errors.New("strategy.allocation_pct above 100")
	}
	if cfg.Strategy.StopLossPct >= 100 {
		return errors.New("strategy.stop_loss_pct must stay below 100")
	}

	backends := JournalBackends(cfg)
	if len(backends) == 0 {
		return errors.New("journal.backend empty")
	}
	for _, b := range backends {
		switch b {
		case "sqlite", "none":
		case "postgres":
			if strings.TrimSpace(cfg.Journal.PostgresDSN) == "" {
				return errors.New("journal.postgres_dsn empty but backend is postgres")
			}
		default:
			return fmt.Errorf("journal.backend %q not supported (sqlite, postgres, none)", b)
		}
	}

	switch cfg.SellQueue.Backend {
	case "stdin":
	case "redis":
		if strings.TrimSpace(cfg.SellQueue.Redis.Addr) == "" {
			return errors.New("sellqueue.redis.addr empty but backend is redis")
		}
	default:
		return fmt.Errorf("sellqueue.backend %q not supported (stdin, redis)", cfg.SellQueue.Backend)
	}

	return nil
}

// JournalBackends splits the journal backend setting into its normalized
// parts. Validation guarantees every returned element is a known backend.
func JournalBackends(cfg *Config) []string {
	parts := strings.Split(cfg.Journal.Backend, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
