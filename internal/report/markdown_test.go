package report

import (
	"strings"
	"testing"

	"GoldPulse/internal/domain/models"
)

func stockInput() *Input {
	return &Input{
		Result: &models.AnalysisResult{
			Code: "aapl",
			Kind: models.KindStock,
			Snapshot: models.TechnicalSnapshot{
				Close:       231.5,
				ChangePct:   1.2,
				MA5:         228.4,
				MA10:        226.1,
				MA20:        224.8,
				Bias5:       1.36,
				Bias20:      2.98,
				DIF:         1.234,
				DEA:         0.987,
				Histogram:   0.494,
				RSI6:        68.2,
				RSI12:       63.1,
				RSI24:       58.9,
				VolumeRatio: 1.15,
			},
			Trend:          models.TrendBull,
			TrendStrength:  65,
			Volume:         models.VolumeNormal,
			MACD:           models.MACDBullish,
			RSI:            models.RSINeutral,
			MASupport:      true,
			Signal:         models.SignalBuy,
			TechnicalScore: 70,
			Reasons:        []string{"price above short term averages"},
			Risks:          []string{"extended above the 20-day average"},
		},
		FinalScore: 70,
		Signal:     models.SignalBuy,
	}
}

func TestRenderStock(t *testing.T) {
	md := Render(stockInput())

	for _, want := range []string{
		"## aapl (stock)",
		"**Close**: 231.50 (+1.20%)",
		"Status: uptrend (strength 65/100)",
		"MA5 228.40 (bias +1.36%)",
		"Price sitting on moving average support",
		"normal volume (1.15x 5-day average)",
		"bullish, DIF 1.234, DEA 0.987, histogram 0.494",
		"neutral, RSI6 68.2 / RSI12 63.1 / RSI24 58.9",
		"Technical score: 70/100",
		"Composite score: 70/100",
		"Signal: **BUY**",
		"price above short term averages",
		"extended above the 20-day average",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}

	for _, absent := range []string{"Macro backdrop", "Headlines", "Macro score", "Commentary"} {
		if strings.Contains(md, absent) {
			t.Fatalf("stock report should not contain %q", absent)
		}
	}
}

func TestRenderGold(t *testing.T) {
	in := stockInput()
	in.Result.Code = "gld"
	in.Result.Kind = models.KindGold
	macroScore := 64
	in.MacroScore = &macroScore
	in.FinalScore = 68
	in.Macro = &models.MacroAssessment{
		Score:   65,
		Summary: "macro backdrop leans supportive for gold (3 bullish vs 1 bearish)",
		Factors: []models.MacroFactor{
			{Name: "dollar_index", Value: 102.5, Score: 70, Impact: models.ImpactBullish},
			{Name: "volatility", Value: 25, Score: 60, Impact: models.ImpactNeutral},
		},
	}
	in.News = &models.NewsDigest{
		Score: 60,
		Headlines: []models.Headline{
			{Title: "gold rally continues", URL: "http://example.com/a", Source: "wire"},
		},
	}
	in.Commentary = "Momentum favors the bulls."

	md := Render(in)
	for _, want := range []string{
		"## gld (gold)",
		"### Macro backdrop",
		"| dollar_index | 102.50 | 70 | bullish |",
		"macro backdrop leans supportive for gold (3 bullish vs 1 bearish)",
		"### Headlines (sentiment 60/100)",
		"[gold rally continues](http://example.com/a) (wire)",
		"Macro score: 64/100",
		"Composite score: 68/100",
		"### Commentary",
		"Momentum favors the bulls.",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("gold report missing %q:\n%s", want, md)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title("gld", "2026-08-31"); got != "gld analysis 2026-08-31" {
		t.Fatalf("title = %q", got)
	}
}
