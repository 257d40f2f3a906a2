package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"papertrader/internal/domain"
)

func TestJournalRecordTrade(t *testing.T) {
	j, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	ev := domain.TradeEvent{
		Symbol:     "AAPL",
		Action:     domain.ActionBuy,
		Price:      20.0,
		Quantity:   62,
		SellTarget: 20.6,
		ROI:        3.0,
		Spent:      1240.0,
	}
	if err := j.RecordTrade(ctx, 1234567890, ev); err != nil {
		t.Fatalf("RecordTrade failed: %v", err)
	}

	n, err := j.TradeCount(ctx, "AAPL")
	if err != nil {
		t.Fatalf("TradeCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 trade, got %d", n)
	}
}

func TestJournalRecordSell(t *testing.T) {
	j, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	defer j.Close()

	ctx := context.Background()
	ev := domain.TradeEvent{
		Symbol:   "MSFT",
		Action:   domain.ActionSell,
		Reason:   domain.SellStopLoss,
		Price:    89.0,
		Quantity: 10,
		Profit:   -110.0,
	}
	if err := j.RecordTrade(ctx, 1234567890, ev); err != nil {
		t.Fatalf("RecordTrade failed: %v", err)
	}

	n, err := j.TradeCount(ctx, "")
	if err != nil {
		t.Fatalf("TradeCount failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 trade, got %d", n)
	}
}

func TestJournalRecordSummary(t *testing.T) {
	j, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	defer j.Close()

	sum := domain.CycleSummary{
		TotalProfit:   12.5,
		TotalInvested: 1240,
		Cash:          3760,
		OverallProfit: 12.5,
		Missing:       []string{"GONE", "LOST"},
	}
	if err := j.RecordSummary(context.Background(), 1234567890, sum); err != nil {
		t.Fatalf("RecordSummary failed: %v", err)
	}
}
