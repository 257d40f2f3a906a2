package console

import (
	"strings"
	"testing"
	"time"

	"papertrader/internal/domain"
)

func TestSinkRendersBuyEvent(t *testing.T) {
	var sb strings.Builder
	s := NewSinkWriter(&sb)

	_ = s.Event(domain.TradeEvent{
		Symbol: "AAPL", Action: domain.ActionBuy,
		Price: 20, SellTarget: 20.6, ROI: 3, Quantity: 62, Spent: 1240, Remaining: 3760,
	})

	out := sb.String()
	for _, want := range []string{"BUY: AAPL", "Price Buy: 20.0000", "Price Sell: 20.6000", "62 Shares", "Remaining: 3760.0000"} {
		if !strings.Contains(out, want) {
			t.Errorf("buy line missing %q:\n%s", want, out)
		}
	}
}

func TestSinkRendersSellWithReason(t *testing.T) {
	var sb strings.Builder
	s := NewSinkWriter(&sb)

	_ = s.Event(domain.TradeEvent{
		Symbol: "MSFT", Action: domain.ActionSell, Reason: domain.SellStopLoss,
		Price: 89, Quantity: 10, Profit: -110,
	})

	out := sb.String()
	if !strings.Contains(out, "Sell MSFT Price 89.0000") || !strings.Contains(out, "Profit: -110.0000") {
		t.Errorf("unexpected sell line:\n%s", out)
	}
	if !strings.Contains(out, "stop-loss") {
		t.Errorf("sell reason missing:\n%s", out)
	}
}

func TestSinkRendersIncompleteSummary(t *testing.T) {
	var sb strings.Builder
	s := NewSinkWriter(&sb)

	_ = s.Summary(domain.CycleSummary{
		TotalProfit: 1.5, TotalInvested: 100, Cash: 900, OverallProfit: 1.5,
		Missing: []string{"GONE", "LOST"},
	})

	out := sb.String()
	if !strings.Contains(out, "inaccurate, missing: ") || !strings.Contains(out, "GONE, LOST") {
		t.Errorf("incomplete marker missing:\n%s", out)
	}
}

func TestSinkRendersAccurateSummary(t *testing.T) {
	var sb strings.Builder
	s := NewSinkWriter(&sb)

	_ = s.Summary(domain.CycleSummary{Cash: 5000})

	out := sb.String()
	if !strings.Contains(out, "SUMMARY (Accurate)") {
		t.Errorf("accurate marker missing:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL Money: 5000.0000") {
		t.Errorf("cash line missing:\n%s", out)
	}
}

func TestSinkCycleHeader(t *testing.T) {
	var sb strings.Builder
	s := NewSinkWriter(&sb)

	ts := time.Date(2026, time.August, 26, 9, 32, 0, 0, time.UTC)
	_ = s.CycleStart(ts)

	out := sb.String()
	if !strings.Contains(out, "26-Aug-2026 (09:32:00)") {
		t.Errorf("timestamp missing:\n%s", out)
	}
	if !strings.Contains(out, "OWNED STOCKS") {
		t.Errorf("header missing:\n%s", out)
	}
}
