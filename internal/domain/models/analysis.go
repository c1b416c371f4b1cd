package models

import "time"

// InstrumentKind selects the analysis parameter set.
type InstrumentKind string

const (
	KindStock InstrumentKind = "stock"
	KindGold  InstrumentKind = "gold"
)

// AnalysisParams holds the per-class indicator thresholds.
type AnalysisParams struct {
	BiasThreshold      float64 // max % above MA5 before a buy is chasing
	VolumeHeavyRatio   float64 // today/5d-avg ratio treated as heavy volume
	VolumeShrinkRatio  float64 // today/5d-avg ratio treated as shrinking volume
	MASupportTolerance float64 // relative distance counted as sitting on MA support
}

// TrendStatus describes the moving-average alignment.
type TrendStatus string

const (
	TrendStrongBull TrendStatus = "strong_bull"
	TrendBull       TrendStatus = "bull"
	TrendSideways   TrendStatus = "sideways"
	TrendBear       TrendStatus = "bear"
	TrendStrongBear TrendStatus = "strong_bear"
)

// VolumeStatus describes today's volume against the 5-day average,
// split by the sign of the day change.
type VolumeStatus string

const (
	VolumeHeavyUp    VolumeStatus = "heavy_up"
	VolumeHeavyDown  VolumeStatus = "heavy_down"
	VolumeShrinkUp   VolumeStatus = "shrink_up"
	VolumeShrinkDown VolumeStatus = "shrink_down"
	VolumeNormal     VolumeStatus = "normal"
)

// MACDStatus describes the DIF/DEA relationship.
type MACDStatus string

const (
	MACDGoldenCross MACDStatus = "golden_cross"
	MACDDeadCross   MACDStatus = "dead_cross"
	MACDBullish     MACDStatus = "bullish"
	MACDBearish     MACDStatus = "bearish"
)

// RSIStatus describes the RSI(6) regime.
type RSIStatus string

const (
	RSIOverbought RSIStatus = "overbought"
	RSIOversold   RSIStatus = "oversold"
	RSINeutral    RSIStatus = "neutral"
)

// Signal is the operational recommendation bucket.
type Signal string

const (
	SignalStrongBuy  Signal = "strong_buy"
	SignalBuy        Signal = "buy"
	SignalHold       Signal = "hold"
	SignalSell       Signal = "sell"
	SignalStrongSell Signal = "strong_sell"
)

// TechnicalSnapshot holds the raw indicator values for the latest candle.
type TechnicalSnapshot struct {
	Close       float64 `json:"close"`
	PrevClose   float64 `json:"prev_close"`
	ChangePct   float64 `json:"change_pct"`
	MA5         float64 `json:"ma5"`
	MA10        float64 `json:"ma10"`
	MA20        float64 `json:"ma20"`
	Bias5       float64 `json:"bias5"`
	Bias10      float64 `json:"bias10"`
	Bias20      float64 `json:"bias20"`
	DIF         float64 `json:"dif"`
	DEA         float64 `json:"dea"`
	Histogram   float64 `json:"histogram"`
	PrevDIF     float64 `json:"prev_dif"`
	PrevDEA     float64 `json:"prev_dea"`
	RSI6        float64 `json:"rsi6"`
	RSI12       float64 `json:"rsi12"`
	RSI24       float64 `json:"rsi24"`
	Volume      float64 `json:"volume"`
	VolumeRatio float64 `json:"volume_ratio"`
}

// AnalysisResult is the full technical read for one instrument.
type AnalysisResult struct {
	Code           string            `json:"code"`
	Kind           InstrumentKind    `json:"kind"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Snapshot       TechnicalSnapshot `json:"snapshot"`
	Trend          TrendStatus       `json:"trend"`
	TrendStrength  int               `json:"trend_strength"`
	Volume         VolumeStatus      `json:"volume"`
	VolumeComment  string            `json:"volume_comment"`
	MACD           MACDStatus        `json:"macd"`
	RSI            RSIStatus         `json:"rsi"`
	MASupport      bool              `json:"ma_support"`
	Signal         Signal            `json:"signal"`
	TechnicalScore int               `json:"technical_score"`
	Reasons        []string          `json:"reasons,omitempty"`
	Risks          []string          `json:"risks,omitempty"`
}
