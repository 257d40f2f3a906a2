package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.IdleSeconds != 120 {
		t.Errorf("idle default: got %d", cfg.App.IdleSeconds)
	}
	if cfg.Exchange.Name != "nasdaq" || cfg.Exchange.TopN != 100 {
		t.Errorf("exchange defaults: got %+v", cfg.Exchange)
	}
	if cfg.Strategy.Window != 5 || cfg.Strategy.EntryDiscountPct != 5 ||
		cfg.Strategy.ProfitTakePct != 3 || cfg.Strategy.StopLossPct != 10 ||
		cfg.Strategy.AllocationPct != 25 || cfg.Strategy.MinLot != 49 {
		t.Errorf("strategy defaults: got %+v", cfg.Strategy)
	}
	if cfg.Portfolio.InitialCash != 5000 {
		t.Errorf("initial cash default: got %v", cfg.Portfolio.InitialCash)
	}
	if cfg.Journal.Backend != "sqlite" || cfg.SellQueue.Backend != "stdin" {
		t.Errorf("backend defaults: journal=%s sellqueue=%s", cfg.Journal.Backend, cfg.SellQueue.Backend)
	}
	if cfg.Market.Timezone != "America/New_York" || cfg.Market.Open != "09:30" || cfg.Market.Close != "16:00" {
		t.Errorf("market defaults: got %+v", cfg.Market)
	}
}

func TestLoadNormalizesExchange(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[exchange]\nname = \" NYSE \"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Exchange.Name != "nyse" {
		t.Errorf("expected nyse, got %q", cfg.Exchange.Name)
	}
}

func TestLoadRejectsUnknownExchange(t *testing.T) {
	if _, err := Load(writeConfig(t, "[exchange]\nname = \"lse\"\n")); err == nil {
		t.Error("expected error for unsupported exchange")
	}
}

func TestLoadAcceptsCombinedJournalBackends(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[journal]\nbackend = \"sqlite, Postgres\"\npostgres_dsn = \"postgres://localhost/trades\"\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got := JournalBackends(cfg)
	if len(got) != 2 || got[0] != "sqlite" || got[1] != "postgres" {
		t.Errorf("expected [sqlite postgres], got %v", got)
	}
}

func TestLoadRejectsPostgresWithoutDSN(t *testing.T) {
	if _, err := Load(writeConfig(t, "[journal]\nbackend = \"postgres\"\n")); err == nil {
		t.Error("expected error for postgres backend without dsn")
	}
}

func TestLoadRejectsRedisWithoutAddr(t *testing.T) {
	if _, err := Load(writeConfig(t, "[sellqueue]\nbackend = \"redis\"\n")); err == nil {
		t.Error("expected error for redis backend without addr")
	}
}

func TestLoadRejectsBadPercentages(t *testing.T) {
	if _, err := Load(writeConfig(t, "[strategy]\nallocation_pct = 150.0\n")); err == nil {
		t.Error("expected error for allocation above 100")
	}
	if _, err := Load(writeConfig(t, "[strategy]\nstop_loss_pct = 100.0\n")); err == nil {
		t.Error("expected error for stop loss at 100")
	}
}
