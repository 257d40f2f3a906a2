package chart

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chartJSON(closes string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[1700000000,1700086400,1700172800,1700259200,1700345600],
		"indicators":{"quote":[{"close":[%s]}]}}],"error":null}}`, closes)
}

func TestPriceHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/AAA"):
			_, _ = w.Write([]byte(chartJSON("10,11,12,13,14")))
		case strings.Contains(r.URL.Path, "/HOLEY"):
			_, _ = w.Write([]byte(chartJSON("10,null,12,13,14")))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.PriceHistory(context.Background(), []string{"AAA", "HOLEY", "MISSING"}, 5)
	if err != nil {
		t.Fatalf("PriceHistory failed: %v", err)
	}

	if len(got["AAA"]) != 5 {
		t.Errorf("expected 5 candles for AAA, got %d", len(got["AAA"]))
	}
	if got["AAA"][4].Close != 14 {
		t.Errorf("expected last close 14, got %v", got["AAA"][4].Close)
	}
	if got["AAA"][0].Ts != 1700000000000 {
		t.Errorf("expected ms timestamps, got %d", got["AAA"][0].Ts)
	}

	// null closes are dropped, not zero-filled
	if len(got["HOLEY"]) != 4 {
		t.Errorf("expected 4 candles for HOLEY, got %d", len(got["HOLEY"]))
	}

	// failed symbols are absent, not an error
	if _, ok := got["MISSING"]; ok {
		t.Error("MISSING should be absent from the result")
	}
}

func TestPriceHistoryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"no data"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.PriceHistory(context.Background(), []string{"BAD"}, 5)
	if err != nil {
		t.Fatalf("batch must not fail on a per-symbol api error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
