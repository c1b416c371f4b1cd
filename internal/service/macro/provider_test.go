package macro

import (
	"context"
	"fmt"
	"testing"
	"time"

	"GoldPulse/internal/service/marketdata"
	"GoldPulse/pkg/cache"
)

type fakeIndexSource struct {
	quotes map[string]*marketdata.IndexQuote
	calls  map[string]int
}

func (f *fakeIndexSource) Quote(_ context.Context, symbol string) (*marketdata.IndexQuote, error) {
	f.calls[symbol]++
	q, ok := f.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}
	return q, nil
}

type fakeStatsSource struct {
	inflation   float64
	centralBank float64
	geo         float64
	failGeo     bool
}

func (f *fakeStatsSource) Inflation(context.Context) (float64, error) {
	return f.inflation, nil
}

func (f *fakeStatsSource) CentralBankPurchases(context.Context) (float64, error) {
	return f.centralBank, nil
}

func (f *fakeStatsSource) Geopolitical(context.Context) (float64, error) {
	if f.failGeo {
		return 0, fmt.Errorf("stats provider down")
	}
	return f.geo, nil
}

func newTestProvider(market *fakeIndexSource, stats *fakeStatsSource) (*Provider, *cache.MemoryCache) {
	mc := cache.NewMemoryCache()
	return NewProvider(market, stats, mc, DefaultTTLs(), nil), mc
}

func TestAssessmentAllFactors(t *testing.T) {
	market := &fakeIndexSource{
		quotes: map[string]*marketdata.IndexQuote{
			"DXY":   {Symbol: "DXY", Price: 102.5, ChangePct: -0.6},
			"US10Y": {Symbol: "US10Y", Price: 4.2},
			"VIX":   {Symbol: "VIX", Price: 25},
		},
		calls: map[string]int{},
	}
	stats := &fakeStatsSource{inflation: 3.5, centralBank: 228, geo: 65}

	p, mc := newTestProvider(market, stats)
	defer mc.Close()

	a, err := p.Assessment(context.Background())
	if err != nil {
		t.Fatalf("Assessment: %v", err)
	}
	if len(a.Factors) != 6 {
		t.Fatalf("expected 6 factors, got %d", len(a.Factors))
	}

	byName := map[string]int{}
	for _, f := range a.Factors {
		byName[f.Name] = f.Score
	}
	if byName[FactorDXY] != 70 {
		t.Fatalf("dxy score = %d", byName[FactorDXY])
	}
	// real rate 4.2 - 3.5 = 0.7 => 50
	if byName[FactorRealRate] != 50 {
		t.Fatalf("real rate score = %d", byName[FactorRealRate])
	}
	if byName[FactorInflation] != 70 {
		t.Fatalf("inflation score = %d", byName[FactorInflation])
	}
	if byName[FactorCentralBank] != 75 {
		t.Fatalf("central bank score = %d", byName[FactorCentralBank])
	}
	if byName[FactorVolatility] != 60 {
		t.Fatalf("volatility score = %d", byName[FactorVolatility])
	}
	if byName[FactorGeopolitical] != 65 {
		t.Fatalf("geopolitical score = %d", byName[FactorGeopolitical])
	}

	// (70+50+70+75+60+65)/6 = 65
	if a.Score != 65 {
		t.Fatalf("structured score = %d, want 65", a.Score)
	}
	if a.Summary == "" {
		t.Fatalf("empty summary")
	}
}

func TestAssessmentOmitsFailedFactor(t *testing.T) {
	market := &fakeIndexSource{
		quotes: map[string]*marketdata.IndexQuote{
			"DXY":   {Symbol: "DXY", Price: 104, ChangePct: 0.7},
			"US10Y": {Symbol: "US10Y", Price: 4.0},
			"VIX":   {Symbol: "VIX", Price: 14},
		},
		calls: map[string]int{},
	}
	stats := &fakeStatsSource{inflation: 2.5, centralBank: 100, geo: 0, failGeo: true}

	p, mc := newTestProvider(market, stats)
	defer mc.Close()

	a, err := p.Assessment(context.Background())
	if err != nil {
		t.Fatalf("Assessment: %v", err)
	}
	if len(a.Factors) != 5 {
		t.Fatalf("expected 5 factors with geopolitical omitted, got %d", len(a.Factors))
	}
	for _, f := range a.Factors {
		if f.Name == FactorGeopolitical {
			t.Fatalf("failed factor should be omitted")
		}
	}
}

func TestAssessmentUsesCache(t *testing.T) {
	market := &fakeIndexSource{
		quotes: map[string]*marketdata.IndexQuote{
			"DXY":   {Symbol: "DXY", Price: 102.5, ChangePct: -0.6},
			"US10Y": {Symbol: "US10Y", Price: 4.2},
			"VIX":   {Symbol: "VIX", Price: 25},
		},
		calls: map[string]int{},
	}
	stats := &fakeStatsSource{inflation: 3.5, centralBank: 228, geo: 65}

	p, mc := newTestProvider(market, stats)
	defer mc.Close()

	ctx := context.Background()
	if _, err := p.Assessment(ctx); err != nil {
		t.Fatalf("first Assessment: %v", err)
	}
	if _, err := p.Assessment(ctx); err != nil {
		t.Fatalf("second Assessment: %v", err)
	}

	for _, symbol := range []string{"DXY", "US10Y", "VIX"} {
		if market.calls[symbol] != 1 {
			t.Fatalf("expected 1 fetch for %s within TTL, got %d", symbol, market.calls[symbol])
		}
	}
}

func TestDefaultTTLs(t *testing.T) {
	ttl := DefaultTTLs()
	if ttl.DXY != time.Hour || ttl.Volatility != time.Hour || ttl.Geopolitical != time.Hour {
		t.Fatalf("hourly factors misconfigured: %+v", ttl)
	}
	if ttl.Inflation != 24*time.Hour || ttl.CentralBank != 24*time.Hour {
		t.Fatalf("daily factors misconfigured: %+v", ttl)
	}
}
