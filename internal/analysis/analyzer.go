package analysis

import (
	"fmt"
	"math"
	"time"

	"GoldPulse/internal/domain/models"
)

// Analyzer runs the full technical read for one instrument class.
type Analyzer struct {
	kind   models.InstrumentKind
	params models.AnalysisParams
}

// NewAnalyzer builds an analyzer for the given instrument code.
func NewAnalyzer(code string) *Analyzer {
	kind := Classify(code)
	return &Analyzer{kind: kind, params: ParamsFor(kind)}
}

// Kind returns the instrument class this analyzer was built for.
func (a *Analyzer) Kind() models.InstrumentKind { return a.kind }

// Params returns the active threshold set.
func (a *Analyzer) Params() models.AnalysisParams { return a.params }

// Analyze computes indicators and statuses over a candle series, oldest first.
func (a *Analyzer) Analyze(code string, candles []models.Candle) (*models.AnalysisResult, error) {
	snapshot, err := Snapshot(candles)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", code, err)
	}

	r := &models.AnalysisResult{
		Code:        code,
		Kind:        a.kind,
		GeneratedAt: time.Now().UTC(),
		Snapshot:    *snapshot,
	}

	a.analyzeTrend(r)
	a.analyzeVolume(r)
	a.analyzeMACD(r)
	a.analyzeRSI(r)
	a.generateSignal(r)

	return r, nil
}

func (a *Analyzer) analyzeTrend(r *models.AnalysisResult) {
	s := r.Snapshot
	switch {
	case s.MA5 > s.MA10 && s.MA10 > s.MA20 && s.Close > s.MA5:
		r.Trend = models.TrendStrongBull
		r.TrendStrength = 85
	case s.MA5 > s.MA10 && s.MA10 > s.MA20:
		r.Trend = models.TrendBull
		r.TrendStrength = 65
	case s.MA5 < s.MA10 && s.MA10 < s.MA20 && s.Close < s.MA5:
		r.Trend = models.TrendStrongBear
		r.TrendStrength = 15
	case s.MA5 < s.MA10 && s.MA10 < s.MA20:
		r.Trend = models.TrendBear
		r.TrendStrength = 30
	default:
		r.Trend = models.TrendSideways
		r.TrendStrength = 50
	}
}

func (a *Analyzer) analyzeVolume(r *models.AnalysisResult) {
	s := r.Snapshot
	up := s.ChangePct > 0

	switch {
	case s.VolumeRatio >= a.params.VolumeHeavyRatio && up:
		r.Volume = models.VolumeHeavyUp
		r.VolumeComment = "heavy volume advance, buyers in control"
	case s.VolumeRatio >= a.params.VolumeHeavyRatio:
		r.Volume = models.VolumeHeavyDown
		r.VolumeComment = "heavy volume decline, caution"
	case s.VolumeRatio <= a.params.VolumeShrinkRatio && up:
		r.Volume = models.VolumeShrinkUp
		r.VolumeComment = "advance on shrinking volume, weak follow-through"
	case s.VolumeRatio <= a.params.VolumeShrinkRatio:
		r.Volume = models.VolumeShrinkDown
		r.VolumeComment = "pullback on shrinking volume, constructive"
	default:
		r.Volume = models.VolumeNormal
		r.VolumeComment = "volume in normal range"
	}
}

func (a *Analyzer) analyzeMACD(r *models.AnalysisResult) {
	s := r.Snapshot
	switch {
	case s.PrevDIF <= s.PrevDEA && s.DIF > s.DEA:
		r.MACD = models.MACDGoldenCross
	case s.PrevDIF >= s.PrevDEA && s.DIF < s.DEA:
		r.MACD = models.MACDDeadCross
	case s.DIF > s.DEA:
		r.MACD = models.MACDBullish
	default:
		r.MACD = models.MACDBearish
	}
}

func (a *Analyzer) analyzeRSI(r *models.AnalysisResult) {
	switch {
	case r.Snapshot.RSI6 >= 80:
		r.RSI = models.RSIOverbought
	case r.Snapshot.RSI6 <= 20:
		r.RSI = models.RSIOversold
	default:
		r.RSI = models.RSINeutral
	}
}

// generateSignal derives the technical score and recommendation bucket.
// Starts from a neutral 50 and applies additive adjustments per status.
func (a *Analyzer) generateSignal(r *models.AnalysisResult) {
	s := r.Snapshot
	score := 50

	switch r.Trend {
	case models.TrendStrongBull:
		score += 20
		r.Reasons = append(r.Reasons, "bullish MA alignment with price above MA5")
	case models.TrendBull:
		score += 10
		r.Reasons = append(r.Reasons, "bullish MA alignment (MA5 > MA10 > MA20)")
	case models.TrendBear:
		score -= 10
		r.Risks = append(r.Risks, "bearish MA alignment")
	case models.TrendStrongBear:
		score -= 20
		r.Risks = append(r.Risks, "bearish MA alignment with price below MA5")
	}

	switch r.MACD {
	case models.MACDGoldenCross:
		score += 10
		r.Reasons = append(r.Reasons, "MACD golden cross")
	case models.MACDBullish:
		score += 5
	case models.MACDDeadCross:
		score -= 10
		r.Risks = append(r.Risks, "MACD dead cross")
	case models.MACDBearish:
		score -= 5
	}

	switch r.RSI {
	case models.RSIOversold:
		score += 5
		r.Reasons = append(r.Reasons, fmt.Sprintf("RSI(6) oversold at %.1f", s.RSI6))
	case models.RSIOverbought:
		score -= 10
		r.Risks = append(r.Risks, fmt.Sprintf("RSI(6) overbought at %.1f", s.RSI6))
	}

	switch r.Volume {
	case models.VolumeHeavyUp:
		score += 5
	case models.VolumeShrinkDown:
		score += 5
		r.Reasons = append(r.Reasons, "shrinking volume pullback")
	case models.VolumeHeavyDown:
		score -= 10
		r.Risks = append(r.Risks, "heavy volume decline")
	case models.VolumeShrinkUp:
		score -= 5
	}

	// Price extension above MA5 penalizes the entry even in a strong trend.
	if s.Bias5 > a.params.BiasThreshold {
		score -= 10
		r.Risks = append(r.Risks, fmt.Sprintf("price extended %.2f%% above MA5", s.Bias5))
	}

	// Sitting on MA5/MA10 support in an up-trend is the preferred entry.
	if r.Trend == models.TrendStrongBull || r.Trend == models.TrendBull {
		if nearSupport(s.Close, s.MA5, a.params.MASupportTolerance) ||
			nearSupport(s.Close, s.MA10, a.params.MASupportTolerance) {
			score += 10
			r.MASupport = true
			r.Reasons = append(r.Reasons, "price holding MA5/MA10 support")
		}
	}

	r.TechnicalScore = Clamp(score)
	r.Signal = SignalFor(r.TechnicalScore)
}

// nearSupport reports whether price sits within tolerance of the MA
// without having broken below it by more than the same tolerance.
func nearSupport(close, ma, tolerance float64) bool {
	if ma <= 0 {
		return false
	}
	return math.Abs(close-ma)/ma <= tolerance
}
