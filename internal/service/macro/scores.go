package macro

import (
	"fmt"
	"math"

	"GoldPulse/internal/domain/models"
)

// Factor names as they appear in assessments and reports.
const (
	FactorDXY          = "dollar_index"
	FactorRealRate     = "real_rate"
	FactorInflation    = "inflation"
	FactorCentralBank  = "central_bank"
	FactorVolatility   = "volatility"
	FactorGeopolitical = "geopolitical"
)

// ScoreDXYChange scores the dollar index day change in percent.
// A stronger dollar pressures gold.
func ScoreDXYChange(changePct float64) int {
	switch {
	case changePct > 0.5:
		return 30
	case changePct < -0.5:
		return 70
	default:
		return 50
	}
}

// ScoreRealRate scores the real interest rate (10Y yield minus CPI).
// Negative real rates are the strongest tailwind for gold.
func ScoreRealRate(rate float64) int {
	switch {
	case rate > 2.0:
		return 20
	case rate > 1.0:
		return 35
	case rate > 0:
		return 50
	default:
		return 75
	}
}

// ScoreInflation scores the CPI year-over-year rate in percent.
func ScoreInflation(cpi float64) int {
	switch {
	case cpi > 4.0:
		return 80
	case cpi > 3.0:
		return 70
	case cpi > 2.0:
		return 50
	default:
		return 30
	}
}

// ScoreCentralBank scores quarterly central-bank purchases in tonnes.
func ScoreCentralBank(tonnes float64) int {
	switch {
	case tonnes > 300:
		return 85
	case tonnes > 150:
		return 75
	case tonnes > 50:
		return 60
	default:
		return 50
	}
}

// ScoreVolatility scores the volatility index level. Elevated market
// stress favors the safe haven.
func ScoreVolatility(vix float64) int {
	switch {
	case vix > 30:
		return 75
	case vix > 20:
		return 60
	case vix > 12:
		return 50
	default:
		return 40
	}
}

// ScoreGeopolitical scores the geopolitical risk index (0-100).
func ScoreGeopolitical(index float64) int {
	switch {
	case index > 70:
		return 80
	case index > 50:
		return 65
	case index > 30:
		return 50
	default:
		return 30
	}
}

// ImpactFor derives the directional label from a factor score.
func ImpactFor(score int) models.FactorImpact {
	switch {
	case score >= 60:
		return models.ImpactBullish
	case score <= 40:
		return models.ImpactBearish
	default:
		return models.ImpactNeutral
	}
}

// StructuredScore averages the available factor scores, 50 when none.
func StructuredScore(factors []models.MacroFactor) int {
	if len(factors) == 0 {
		return 50
	}
	var sum int
	for _, f := range factors {
		sum += f.Score
	}
	return int(math.Round(float64(sum) / float64(len(factors))))
}

// Summarize renders the bullish/bearish balance as a one-line summary.
func Summarize(factors []models.MacroFactor) string {
	if len(factors) == 0 {
		return "no macro data available, staying neutral"
	}

	var bullish, bearish int
	for _, f := range factors {
		switch f.Impact {
		case models.ImpactBullish:
			bullish++
		case models.ImpactBearish:
			bearish++
		}
	}

	switch {
	case bullish > 0 && bearish == 0:
		return fmt.Sprintf("macro backdrop broadly supportive for gold (%d bullish factors)", bullish)
	case bearish > 0 && bullish == 0:
		return fmt.Sprintf("macro backdrop broadly negative for gold (%d bearish factors)", bearish)
	case bullish > bearish:
		return fmt.Sprintf("macro backdrop leans supportive for gold (%d bullish vs %d bearish)", bullish, bearish)
	case bearish > bullish:
		return fmt.Sprintf("macro backdrop leans negative for gold (%d bullish vs %d bearish)", bullish, bearish)
	default:
		return "macro backdrop neutral, watch the technicals"
	}
}
