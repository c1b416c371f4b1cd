package report

import (
	"fmt"
	"strings"

	"GoldPulse/internal/domain/models"
)

var trendLabels = map[models.TrendStatus]string{
	models.TrendStrongBull: "strong uptrend",
	models.TrendBull:       "uptrend",
	models.TrendSideways:   "sideways",
	models.TrendBear:       "downtrend",
	models.TrendStrongBear: "strong downtrend",
}

var macdLabels = map[models.MACDStatus]string{
	models.MACDGoldenCross: "golden cross",
	models.MACDDeadCross:   "dead cross",
	models.MACDBullish:     "bullish",
	models.MACDBearish:     "bearish",
}

var rsiLabels = map[models.RSIStatus]string{
	models.RSIOverbought: "overbought",
	models.RSIOversold:   "oversold",
	models.RSINeutral:    "neutral",
}

var signalLabels = map[models.Signal]string{
	models.SignalStrongBuy:  "STRONG BUY",
	models.SignalBuy:        "BUY",
	models.SignalHold:       "HOLD",
	models.SignalSell:       "SELL",
	models.SignalStrongSell: "STRONG SELL",
}

var volumeLabels = map[models.VolumeStatus]string{
	models.VolumeHeavyUp:    "heavy volume advance",
	models.VolumeHeavyDown:  "heavy volume decline",
	models.VolumeShrinkUp:   "advance on shrinking volume",
	models.VolumeShrinkDown: "pullback on shrinking volume",
	models.VolumeNormal:     "normal volume",
}

// Input bundles everything a rendered report can include. Macro, news,
// scores and commentary are optional and skipped when absent.
type Input struct {
	Result     *models.AnalysisResult
	Macro      *models.MacroAssessment
	News       *models.NewsDigest
	MacroScore *int
	FinalScore int
	Signal     models.Signal
	Commentary string
}

// Title builds the notification title for a report.
func Title(code string, generatedAt string) string {
	return fmt.Sprintf("%s analysis %s", code, generatedAt)
}

// Render produces the markdown report body.
func Render(in *Input) string {
	r := in.Result
	s := r.Snapshot
	var b strings.Builder

	fmt.Fprintf(&b, "## %s (%s)\n\n", r.Code, r.Kind)
	fmt.Fprintf(&b, "**Close**: %.2f (%+.2f%%)\n\n", s.Close, s.ChangePct)

	fmt.Fprintf(&b, "### Trend\n\n")
	fmt.Fprintf(&b, "- Status: %s (strength %d/100)\n", trendLabels[r.Trend], r.TrendStrength)
	fmt.Fprintf(&b, "- MA5 %.2f (bias %+.2f%%), MA10 %.2f, MA20 %.2f (bias %+.2f%%)\n",
		s.MA5, s.Bias5, s.MA10, s.MA20, s.Bias20)
	if r.MASupport {
		b.WriteString("- Price sitting on moving average support\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### Volume\n\n")
	fmt.Fprintf(&b, "- %s (%.2fx 5-day average)\n", volumeLabels[r.Volume], s.VolumeRatio)
	if r.VolumeComment != "" {
		fmt.Fprintf(&b, "- %s\n", r.VolumeComment)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "### MACD\n\n")
	fmt.Fprintf(&b, "- %s, DIF %.3f, DEA %.3f, histogram %.3f\n\n",
		macdLabels[r.MACD], s.DIF, s.DEA, s.Histogram)

	fmt.Fprintf(&b, "### RSI\n\n")
	fmt.Fprintf(&b, "- %s, RSI6 %.1f / RSI12 %.1f / RSI24 %.1f\n\n",
		rsiLabels[r.RSI], s.RSI6, s.RSI12, s.RSI24)

	if in.Macro != nil && len(in.Macro.Factors) > 0 {
		fmt.Fprintf(&b, "### Macro backdrop\n\n")
		b.WriteString("| Factor | Value | Score | Impact |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range in.Macro.Factors {
			fmt.Fprintf(&b, "| %s | %.2f | %d | %s |\n", f.Name, f.Value, f.Score, f.Impact)
		}
		fmt.Fprintf(&b, "\n%s\n\n", in.Macro.Summary)
	}

	if in.News != nil && len(in.News.Headlines) > 0 {
		fmt.Fprintf(&b, "### Headlines (sentiment %d/100)\n\n", in.News.Score)
		for _, h := range in.News.Headlines {
			if h.URL != "" {
				fmt.Fprintf(&b, "- [%s](%s) (%s)\n", h.Title, h.URL, h.Source)
			} else {
				fmt.Fprintf(&b, "- %s (%s)\n", h.Title, h.Source)
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "### Recommendation\n\n")
	fmt.Fprintf(&b, "- Technical score: %d/100\n", r.TechnicalScore)
	if in.MacroScore != nil {
		fmt.Fprintf(&b, "- Macro score: %d/100\n", *in.MacroScore)
	}
	fmt.Fprintf(&b, "- Composite score: %d/100\n", in.FinalScore)
	fmt.Fprintf(&b, "- Signal: **%s**\n\n", signalLabels[in.Signal])

	if len(r.Reasons) > 0 {
		b.WriteString("**Signals**\n\n")
		for _, reason := range r.Reasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
		b.WriteString("\n")
	}

	if len(r.Risks) > 0 {
		b.WriteString("**Risks**\n\n")
		for _, risk := range r.Risks {
			fmt.Fprintf(&b, "- %s\n", risk)
		}
		b.WriteString("\n")
	}

	if in.Commentary != "" {
		fmt.Fprintf(&b, "### Commentary\n\n%s\n", in.Commentary)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
