package llm

import (
	"fmt"
	"strings"

	"GoldPulse/internal/domain/models"
)

const systemPrompt = "You are a seasoned precious metals and equity analyst. " +
	"Write a short, grounded commentary in plain English. " +
	"Do not invent numbers that are not in the input. " +
	"Close with one sentence on the main risk to the view."

const maxHeadlines = 5

// BuildPrompt renders the analysis context into a user prompt.
// Macro and news sections are included only when present.
func BuildPrompt(result *models.AnalysisResult, macro *models.MacroAssessment, news *models.NewsDigest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Instrument: %s (%s)\n", result.Code, result.Kind)
	fmt.Fprintf(&b, "Close: %.2f (%+.2f%%)\n", result.Snapshot.Close, result.Snapshot.ChangePct)
	fmt.Fprintf(&b, "Technical score: %d/100, signal: %s\n", result.TechnicalScore, result.Signal)
	fmt.Fprintf(&b, "Trend: %s, MACD: %s, RSI6: %.1f (%s), volume: %s\n",
		result.Trend, result.MACD, result.Snapshot.RSI6, result.RSI, result.Volume)

	if len(result.Reasons) > 0 {
		b.WriteString("Signals:\n")
		for _, r := range result.Reasons {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if macro != nil && len(macro.Factors) > 0 {
		fmt.Fprintf(&b, "\nMacro score: %d/100 (%s)\n", macro.Score, macro.Summary)
		for _, f := range macro.Factors {
			fmt.Fprintf(&b, "- %s: %.2f, score %d, %s\n", f.Name, f.Value, f.Score, f.Impact)
		}
	}

	if news != nil && len(news.Headlines) > 0 {
		fmt.Fprintf(&b, "\nNews sentiment: %d/100, recent headlines:\n", news.Score)
		for i, h := range news.Headlines {
			if i >= maxHeadlines {
				break
			}
			fmt.Fprintf(&b, "- [%s] %s\n", h.Source, h.Title)
		}
	}

	b.WriteString("\nWrite 3-5 sentences of commentary for this instrument.")
	return b.String()
}
