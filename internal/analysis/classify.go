package analysis

import (
	"strings"

	"GoldPulse/internal/domain/models"
)

// goldCodes are the instrument codes always analyzed with gold parameters.
var goldCodes = map[string]struct{}{
	"au9999": {},
	"gc=f":   {},
	"gld":    {},
	"gold":   {},
	"nem":    {},
}

// Classify maps an instrument code to its analyzer class. A code is gold
// when it is a known gold symbol or contains "gold", case-insensitive.
func Classify(code string) models.InstrumentKind {
	lower := strings.ToLower(strings.TrimSpace(code))
	if _, ok := goldCodes[lower]; ok {
		return models.KindGold
	}
	if strings.Contains(lower, "gold") {
		return models.KindGold
	}
	return models.KindStock
}

// ParamsFor returns the immutable threshold set for an instrument class.
func ParamsFor(kind models.InstrumentKind) models.AnalysisParams {
	if kind == models.KindGold {
		return models.AnalysisParams{
			BiasThreshold:      3.0,
			VolumeHeavyRatio:   1.8,
			VolumeShrinkRatio:  0.7,
			MASupportTolerance: 0.02,
		}
	}
	return models.AnalysisParams{
		BiasThreshold:      5.0,
		VolumeHeavyRatio:   1.5,
		VolumeShrinkRatio:  0.7,
		MASupportTolerance: 0.02,
	}
}
