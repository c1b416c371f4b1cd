package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDailyCandlesSortsAscending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/candles/daily" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "gld" || r.URL.Query().Get("days") != "30" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Fatalf("missing api key header")
		}

		// newest first on the wire
		_ = json.NewEncoder(w).Encode(candleResponse{
			Symbol: "gld",
			Candles: []candleRow{
				{Date: "2026-08-28", Open: 184, High: 186, Low: 183, Close: 185.2, Volume: 1200},
				{Date: "2026-08-27", Open: 183, High: 185, Low: 182, Close: 184.1, Volume: 1100},
				{Date: "bad-date", Close: 1},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	candles, err := c.DailyCandles(context.Background(), "gld", 30)
	if err != nil {
		t.Fatalf("DailyCandles: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 parseable candles, got %d", len(candles))
	}
	if !candles[0].Day.Before(candles[1].Day) {
		t.Fatalf("candles not sorted ascending: %v then %v", candles[0].Day, candles[1].Day)
	}
	if candles[1].Close != 185.2 || candles[1].Code != "gld" {
		t.Fatalf("unexpected last candle: %+v", candles[1])
	}
}

func TestDailyCandlesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(candleResponse{Symbol: "gld"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	if _, err := c.DailyCandles(context.Background(), "gld", 30); err == nil {
		t.Fatalf("expected error on empty candle response")
	}
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/quote" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(IndexQuote{Symbol: "DXY", Price: 102.5, ChangePct: -0.6})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 5*time.Second)
	q, err := c.Quote(context.Background(), "DXY")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Price != 102.5 || q.ChangePct != -0.6 {
		t.Fatalf("unexpected quote: %+v", q)
	}
}
