package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

// Journal keeps the structured audit trail of trades and cycle summaries
// in a local sqlite database.
type Journal struct {
	db *sql.DB
}

func New(path string) (*Journal, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

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
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_ms INTEGER NOT NULL,
  symbol TEXT NOT NULL,
  action TEXT NOT NULL,
  reason TEXT NOT NULL,
  price REAL NOT NULL,
  quantity INTEGER NOT NULL,
  sell_target REAL NOT NULL,
  roi REAL NOT NULL,
  spent REAL NOT NULL,
  profit REAL NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(ts_ms);
CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);

CREATE TABLE IF NOT EXISTS cycle_summaries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_ms INTEGER NOT NULL,
  total_profit REAL NOT NULL,
  total_invested REAL NOT NULL,
  cash REAL NOT NULL,
  overall_profit REAL NOT NULL,
  complete INTEGER NOT NULL,
  missing TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_summaries_ts ON cycle_summaries(ts_ms);
`)
	return err
}

func (j *Journal) RecordTrade(ctx context.Context, ts int64, ev domain.TradeEvent) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades(ts_ms, symbol, action, reason, price, quantity, sell_target, roi, spent, profit, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ts, ev.Symbol, ev.Action.String(), ev.Reason.String(), ev.Price, ev.Quantity, ev.SellTarget, ev.ROI, ev.Spent, ev.Profit, ts)
	return err
}

func (j *Journal) RecordSummary(ctx context.Context, ts int64, sum domain.CycleSummary) error {
	complete := 0
	if sum.Complete() {
		complete = 1
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO cycle_summaries(ts_ms, total_profit, total_invested, cash, overall_profit, complete, missing, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, ts, sum.TotalProfit, sum.TotalInvested, sum.Cash, sum.OverallProfit, complete, strings.Join(sum.Missing, ","), ts)
	return err
}

// TradeCount reports how many trades have been journaled for a symbol;
// empty symbol counts everything.
func (j *Journal) TradeCount(ctx context.Context, symbol string) (int64, error) {
	var n int64
	var err error
	if symbol == "" {
		err = j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades`).Scan(&n)
	} else {
		err = j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trades WHERE symbol=?`, symbol).Scan(&n)
	}
	return n, err
}

var _ port.Journal = (*Journal)(nil)
