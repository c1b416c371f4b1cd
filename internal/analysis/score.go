package analysis

import (
	"math"

	"GoldPulse/internal/domain/models"
)

// Blend weights for gold composite scoring.
const (
	newsWeight       = 0.3
	structuredWeight = 0.7
	technicalWeight  = 0.6
	macroWeight      = 0.4
)

// MacroBlend combines the news score and the structured macro score.
func MacroBlend(news, structured int) int {
	return Clamp(int(math.Round(float64(news)*newsWeight + float64(structured)*structuredWeight)))
}

// FinalScore combines the technical and macro scores.
func FinalScore(technical, macro int) int {
	return Clamp(int(math.Round(float64(technical)*technicalWeight + float64(macro)*macroWeight)))
}

// Clamp bounds a score to [0, 100].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// SignalFor maps a score to its recommendation bucket.
func SignalFor(score int) models.Signal {
	switch {
	case score >= 80:
		return models.SignalStrongBuy
	case score >= 65:
		return models.SignalBuy
	case score >= 40:
		return models.SignalHold
	case score >= 25:
		return models.SignalSell
	default:
		return models.SignalStrongSell
	}
}
