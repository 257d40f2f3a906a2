package screener

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"papertrader/internal/application/port"
)

// Exchange company lists come as CSV downloads from the screener endpoint.
var defaultURLs = map[string]string{
	"nasdaq": "https://old.nasdaq.com/screening/companies-by-name.aspx?letter=0&exchange=nasdaq&render=download",
	"nyse":   "https://old.nasdaq.com/screening/companies-by-name.aspx?letter=0&exchange=nyse&render=download",
	"canada": "https://old.nasdaq.com/screening/companies-by-region.aspx?region=North+America&country=Canada&render=download",
}

// Client fetches the exchange ticker list and ranks it descending by
// market capitalization.
type Client struct {
	exchange string
	url      string
	http     *http.Client
}

func New(exchange, urlOverride string) *Client {
	u := urlOverride
	if strings.TrimSpace(u) == "" {
		u = defaultURLs[exchange]
	}
	return &Client{
		exchange: exchange,
		url:      u,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RankedSymbols downloads and ranks the company list. Any failure comes
// back as an error; the caller treats it as "no data this cycle".
func (c *Client) RankedSymbols(ctx context.Context, topN int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
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
		return nil, fmt.Errorf("screener http %d: %s", resp.StatusCode, string(body))
	}

	ranked, err := Parse(resp.Body)
	if err != nil {
		return nil, err
	}
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	log.Debug().Str("exchange", c.exchange).Int("symbols", len(ranked)).Msg("screener fetched")
	return ranked, nil
}

type company struct {
	symbol    string
	marketCap float64
}

// Parse reads the screener CSV and returns symbols sorted descending by
// market cap. Rows with an unparseable cap rank as zero rather than being
// dropped; the sort is stable so ties keep file order.
func Parse(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("screener csv header: %w", err)
	}
	symCol, capCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "symbol":
			symCol = i
		case "marketcap", "market cap":
			capCol = i
		}
	}
	if symCol < 0 {
		return nil, fmt.Errorf("screener csv has no Symbol column")
	}

	var companies []company
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("screener csv row: %w", err)
		}
		if symCol >= len(rec) {
			continue
		}
		sym := strings.ToUpper(strings.TrimSpace(rec[symCol]))
		if sym == "" {
			continue
		}
		cap := 0.0
		if capCol >= 0 && capCol < len(rec) {
			cap = MarketCapValue(rec[capCol])
		}
		companies = append(companies, company{symbol: sym, marketCap: cap})
	}

	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].marketCap > companies[j].marketCap
	})

	out := make([]string, len(companies))
	for i, co := range companies {
		out[i] = co.symbol
	}
	return out, nil
}

// MarketCapValue normalizes a screener market-cap cell: strips a leading
// currency sign and expands the K/M/B/T suffixes. Unparseable values are
// worth zero.
func MarketCapValue(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" || s == "n/a" || s == "N/A" {
		return 0
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "B"):
		mult, s = 1e9, strings.TrimSuffix(s, "B")
	case strings.HasSuffix(s, "T"):
		mult, s = 1e12, strings.TrimSuffix(s, "T")
	}

	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return n * mult
}

var _ port.SymbolSource = (*Client)(nil)
