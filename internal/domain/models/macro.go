package models

import "time"

// FactorImpact classifies a factor's directional effect on gold.
type FactorImpact string

const (
	ImpactBullish FactorImpact = "bullish"
	ImpactBearish FactorImpact = "bearish"
	ImpactNeutral FactorImpact = "neutral"
)

// MacroFactor is one scored macro indicator.
type MacroFactor struct {
	Name      string       `json:"name"`
	Value     float64      `json:"value"`
	Score     int          `json:"score"` // 0-100, higher is more bullish for gold
	Impact    FactorImpact `json:"impact"`
	Detail    string       `json:"detail,omitempty"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// MacroAssessment aggregates the available factors into a structured score.
type MacroAssessment struct {
	Factors     []MacroFactor `json:"factors"`
	Score       int           `json:"score"` // mean of factor scores, 50 when none
	Summary     string        `json:"summary"`
	GeneratedAt time.Time     `json:"generated_at"`
}
