package formatter

import (
	"strings"
	"time"

	"github.com/yildizm/PRDCheck/internal/compliance"
	"github.com/yildizm/PRDCheck/internal/emoji"
)

// DefaultDateFormat renders dates like "March 4, 2025"
const DefaultDateFormat = "January 2, 2006"

// Report section titles, numbered as in the printed report
const (
	TitleReport     = "Compliance Official's Analysis Report"
	TitleReferences = "1. Regulatory References"
	TitleAssessment = "3. Compliance Assessment"
	TitleResidual   = "4. Residual Risk Summary"
	TitleActions    = "5. Pre-Go-Live Action Items"
	TitleSignOff    = "6. Compliance Sign-Off"
)

// formatDate renders t, or "N/A" for the zero time
func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "N/A"
	}
	if layout == "" {
		layout = DefaultDateFormat
	}
	return t.Format(layout)
}

// AdequacySymbol returns the icon shown next to an adequacy rating
func AdequacySymbol(a compliance.Adequacy) string {
	switch a {
	case compliance.AdequacyAdequate:
		return emoji.GetEmoji("success")
	case compliance.AdequacyPartial:
		return emoji.GetEmoji("warning")
	case compliance.AdequacyInadequate:
		return emoji.GetEmoji("error")
	default:
		return emoji.GetEmoji("info")
	}
}

// RiskSymbol returns the icon shown next to a risk level
func RiskSymbol(level compliance.RiskLevel) string {
	switch level {
	case compliance.RiskLow:
		return emoji.GetEmoji("success")
	case compliance.RiskHigh:
		return emoji.GetEmoji("error")
	default:
		return emoji.GetEmoji("warning")
	}
}

// scoreFraction maps a 0-100 score onto 0-1 for bar rendering
func scoreFraction(score int) float64 {
	switch {
	case score <= 0:
		return 0
	case score >= 100:
		return 1
	default:
		return float64(score) / 100
	}
}

// escapeCell keeps table cells on one row
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
