package answer

import (
	"fmt"
	"strings"
)

// assetReturn is one symbol's percent change inside a comparison.
type assetReturn struct {
	Symbol string
	Pct    float64
}

// formatReturns lists each asset's return on one line and highlights the
// largest and smallest signed values. missing lists symbols that produced no
// data; they are reported but do not participate in the ranking.
func formatReturns(returns []assetReturn, missing []string) string {
	if len(returns) == 0 {
		return msgUnknown
	}

	parts := make([]string, 0, len(returns))
	for _, r := range returns {
		parts = append(parts, fmt.Sprintf("%s %s: %s", returnEmoji(r.Pct), r.Symbol, formatSignedPct(r.Pct)))
	}

	var b strings.Builder
	b.WriteString("📊 مقایسه بازدهی دارایی‌ها:\n")
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	if len(returns) > 1 {
		max, min := returns[0], returns[0]
		for _, r := range returns[1:] {
			if r.Pct > max.Pct {
				max = r
			}
			if r.Pct < min.Pct {
				min = r
			}
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s 🔝 بیشترین بازده: %s %s\n", signEmoji(max.Pct), max.Symbol, formatSignedPct(max.Pct))
		fmt.Fprintf(&b, "%s 🔻 کمترین بازده: %s %s\n", signEmoji(min.Pct), min.Symbol, formatSignedPct(min.Pct))
	}
	for _, sym := range missing {
		fmt.Fprintf(&b, "⚠️ برای %s داده‌ای پیدا نشد.\n", sym)
	}
	return strings.TrimRight(b.String(), "\n")
}

func returnEmoji(pct float64) string {
	switch {
	case pct > 0:
		return "🟢"
	case pct < 0:
		return "🔴"
	default:
		return "⚪️"
	}
}

func signEmoji(pct float64) string {
	if pct >= 0 {
		return "🟢"
	}
	return "🔴"
}

// formatSignedPct renders a percent with the sign trailing the number, the
// way returns are displayed ("10.00+%").
func formatSignedPct(pct float64) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("%.2f+%%", pct)
	case pct < 0:
		return fmt.Sprintf("%.2f-%%", -pct)
	default:
		return fmt.Sprintf("%.2f%%", pct)
	}
}
