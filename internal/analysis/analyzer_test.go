package analysis

import (
	"testing"

	"GoldPulse/internal/domain/models"
)

func TestAnalyzeUptrend(t *testing.T) {
	a := NewAnalyzer("AAPL")
	if a.Kind() != models.KindStock {
		t.Fatalf("kind = %s", a.Kind())
	}

	candles := makeCandles(30, 100, 0.5, 1000)
	r, err := a.Analyze("AAPL", candles)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.Trend != models.TrendStrongBull {
		t.Fatalf("trend = %s, want strong_bull", r.Trend)
	}
	if r.RSI != models.RSIOverbought {
		t.Fatalf("rsi = %s, want overbought", r.RSI)
	}
	if r.Volume != models.VolumeNormal {
		t.Fatalf("volume = %s, want normal", r.Volume)
	}
	if !r.MASupport {
		t.Fatalf("expected MA support near MA5")
	}
	// 50 +20 trend +5 macd bullish -10 overbought +10 support = 75
	if r.TechnicalScore != 75 {
		t.Fatalf("score = %d, want 75", r.TechnicalScore)
	}
	if r.Signal != models.SignalBuy {
		t.Fatalf("signal = %s, want buy", r.Signal)
	}
}

func TestAnalyzeDowntrend(t *testing.T) {
	a := NewAnalyzer("600519")
	candles := makeCandles(30, 130, -0.5, 1000)
	r, err := a.Analyze("600519", candles)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.Trend != models.TrendStrongBear {
		t.Fatalf("trend = %s, want strong_bear", r.Trend)
	}
	if r.RSI != models.RSIOversold {
		t.Fatalf("rsi = %s, want oversold", r.RSI)
	}
	if r.MASupport {
		t.Fatalf("no MA support expected in a downtrend")
	}
	// 50 -20 trend -5 macd bearish +5 oversold = 30
	if r.TechnicalScore != 30 {
		t.Fatalf("score = %d, want 30", r.TechnicalScore)
	}
	if r.Signal != models.SignalSell {
		t.Fatalf("signal = %s, want sell", r.Signal)
	}
}

func TestAnalyzeHeavyVolumeBuckets(t *testing.T) {
	a := NewAnalyzer("AAPL")
	candles := makeCandles(30, 100, 0.5, 1000)
	candles[len(candles)-1].Volume = 1600 // 1.6x the 5-day average

	r, err := a.Analyze("AAPL", candles)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Volume != models.VolumeHeavyUp {
		t.Fatalf("volume = %s, want heavy_up for stock at 1.6x", r.Volume)
	}

	// The same ratio stays below the gold threshold of 1.8.
	g := NewAnalyzer("GLD")
	rg, err := g.Analyze("GLD", candles)
	if err != nil {
		t.Fatalf("Analyze gold: %v", err)
	}
	if rg.Volume != models.VolumeNormal {
		t.Fatalf("volume = %s, want normal for gold at 1.6x", rg.Volume)
	}
}

func TestAnalyzeShrinkingPullback(t *testing.T) {
	a := NewAnalyzer("GLD")
	candles := makeCandles(30, 100, 0.5, 1000)
	last := len(candles) - 1
	candles[last].Close = candles[last-1].Close - 0.2 // small pullback
	candles[last].Volume = 500                        // 0.5x the 5-day average

	r, err := a.Analyze("GLD", candles)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Volume != models.VolumeShrinkDown {
		t.Fatalf("volume = %s, want shrink_down", r.Volume)
	}
}
