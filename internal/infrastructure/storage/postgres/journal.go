package postgres

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// Journal is the postgres-backed trade journal, for setups where the audit
// trail should live off the trading host.
type Journal struct {
	db *sql.DB
}

func New(dsn string) (*Journal, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	j := &Journal{db: db}
	if err := j.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) Close() error { return j.db.Close() }

func (j *Journal) migrate(ctx context.Context) error {
	_, err := j.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS trades (
  id BIGSERIAL PRIMARY KEY,
  ts_ms BIGINT NOT NULL,
  symbol TEXT NOT NULL,
  action TEXT NOT NULL,
  reason TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL,
  quantity BIGINT NOT NULL,
  sell_target DOUBLE PRECISION NOT NULL,
  roi DOUBLE PRECISION NOT NULL,
  spent DOUBLE PRECISION NOT NULL,
  profit DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(ts_ms);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);

CREATE TABLE IF NOT EXISTS cycle_summaries (
  id BIGSERIAL PRIMARY KEY,
  ts_ms BIGINT NOT NULL,
  total_profit DOUBLE PRECISION NOT NULL,
  total_invested DOUBLE PRECISION NOT NULL,
  cash DOUBLE PRECISION NOT NULL,
  overall_profit DOUBLE PRECISION NOT NULL,
  complete BOOLEAN NOT NULL,
  missing TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_ts ON cycle_summaries(ts_ms);
`)
	return err
}

func (j *Journal) RecordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades(ts_ms, symbol, action, reason, price, quantity, sell_target, roi, spent, profit)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, ts, ev.Symbol, ev.Action.String(), ev.Reason.String(), ev.Price, ev.Quantity, ev.SellTarget, ev.ROI, ev.Spent, ev.Profit)
	return err
}

func (j *Journal) RecordSummary(ctx context.Context, ts int64, sum domain.CycleSummary) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO cycle_summaries(ts_ms, total_profit, total_invested, cash, overall_profit, complete, missing)
		VALUES($1, $2, $3, $4, $5, $6, $7)
	`, ts, sum.TotalProfit, sum.TotalInvested, sum.Cash, sum.OverallProfit, sum.Complete(), strings.Join(sum.Missing, ","))
	return err
}

var _ port.Journal = (*Journal)(nil)
