package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client pulls recent daily close history per symbol from the chart API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURLOverride string) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURLOverride), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// PriceHistory fetches each symbol's close series. Symbols that fail are
// logged and left out of the result; one bad symbol never sinks the batch.
func (c *Client) PriceHistory(ctx context.Context, symbols []string, window int) (map[string][]port.Candle, error) {
	if window <= 0 {
		window = 5
	}
	out := make(map[string][]port.Candle, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		candles, err := c.fetchOne(ctx, symbol, window)
		if err != nil {
			log.Debug().Err(err).Str("symbol", symbol).Msg("history fetch failed, symbol skipped")
			continue
		}
		if len(candles) > 0 {
			out[symbol] = candles
		}
	}
	return out, nil
}

func (c *Client) fetchOne(ctx context.Context, symbol string, window int) ([]port.Candle, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d", c.baseURL, symbol, window)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chart http %d: %s", resp.StatusCode, string(body))
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if cr.Chart.Error != nil {
		return nil, fmt.Errorf("chart api: %s %s", cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart api: empty result")
	}

	res := cr.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart api: no quote data")
	}
	closes := res.Indicators.Quote[0].Close

	candles := make([]port.Candle, 0, len(closes))
	for i, cl := range closes {
		if cl == nil {
			continue
		}
		var ts int64
		if i < len(res.Timestamp) {
			ts = res.Timestamp[i] * 1000
		}
		candles = append(candles, port.Candle{Ts: ts, Close: *cl})
	}
	return candles, nil
}

var _ port.HistorySource = (*Client)(nil)
