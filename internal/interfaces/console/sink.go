package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"papertrader/internal/application/port"
	"papertrader/internal/domain"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
)

func colorize(s, c string) string { return c + s + ansiReset }

// signColor: green for gains, red for everything else.
func signColor(v float64) string {
	if domain.Round4(v) > 0 {
		return ansiGreen
	}
	return ansiRed
}

// Sink renders the per-cycle report as human-readable lines.
type Sink struct {
	out io.Writer
}

func NewSink() port.Sink { return &Sink{out: os.Stdout} }

// NewSinkWriter is used by tests to capture output.
func NewSinkWriter(w io.Writer) port.Sink { return &Sink{out: w} }

func (s *Sink) CycleStart(ts time.Time) error {
	fmt.Fprintf(s.out, "Current Timestamp: %s\n", ts.Format("02-Jan-2006 (15:04:05)"))
	fmt.Fprintln(s.out, "================")
	fmt.Fprintln(s.out, "OWNED STOCKS")
	fmt.Fprintln(s.out, "================")
	return nil
}

func (s *Sink) Event(ev domain.TradeEvent) error {
	switch ev.Action {
	case domain.ActionBuy:
		fmt.Fprintf(s.out, "BUY: %s Price Buy: %.4f Price Sell: %.4f ROI: %.4f%%", ev.Symbol, ev.Price, ev.SellTarget, ev.ROI)
		fmt.Fprint(s.out, colorize(fmt.Sprintf(" Spent: %.4f (%d Shares)", ev.Spent, ev.Quantity), ansiRed))
		fmt.Fprintln(s.out, colorize(fmt.Sprintf(" Remaining: %.4f", ev.Remaining), ansiGreen))
	case domain.ActionSell:
		reason := ""
		if ev.Reason != domain.SellNone {
			reason = colorize(" ["+ev.Reason.String()+"]", ansiDim)
		}
		fmt.Fprintf(s.out, "Sell %s Price %.4f %s%s\n", ev.Symbol, ev.Price,
			colorize(fmt.Sprintf("Profit: %.4f", domain.Round4(ev.Profit)), signColor(ev.Profit)), reason)
	default:
		line := fmt.Sprintf("%s Profit: %.4f (Current @ %.4f, Bought @ %.4f, Quantity: %d)",
			ev.Symbol, domain.Round4(ev.Profit), ev.Price, ev.BuyPrice, ev.Quantity)
		fmt.Fprintln(s.out, colorize(line, signColor(ev.Profit)))
	}
	return nil
}

func (s *Sink) Summary(sum domain.CycleSummary) error {
	fmt.Fprintln(s.out, "================")
	if sum.Complete() {
		fmt.Fprintln(s.out, colorize("SUMMARY (Accurate)", ansiGreen))
	} else {
		fmt.Fprint(s.out, colorize("SUMMARY (inaccurate, missing: ", ansiRed))
		fmt.Fprint(s.out, strings.Join(sum.Missing, ", "))
		fmt.Fprintln(s.out, colorize(")", ansiRed))
	}
	fmt.Fprintln(s.out, "================")
	fmt.Fprintln(s.out, colorize(fmt.Sprintf("TOTAL Profit: %.4f", domain.Round4(sum.TotalProfit)), signColor(sum.TotalProfit)))
	fmt.Fprintf(s.out, "TOTAL Invested: %.4f\n", domain.Round4(sum.TotalInvested))
	fmt.Fprintf(s.out, "TOTAL Money: %.4f\n", domain.Round4(sum.Cash))
	fmt.Fprintln(s.out, colorize(fmt.Sprintf("OVERALL Profit: %.4f", domain.Round4(sum.OverallProfit)), signColor(sum.OverallProfit)))
	fmt.Fprintln(s.out, "================")
	return nil
}
