package utils

import (
	"fmt"
	"strings"
	"time"

	"paytrack/internal/models"
)

// FormatMoney renders an amount with the rupee sign, dropping the decimals
// when they are zero.
func FormatMoney(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("₹%d", int64(amount))
	}
	return fmt.Sprintf("₹%.2f", amount)
}

// FormatDateForDisplay renders a date the way it is typed in chat (DD/MM/YYYY).
func FormatDateForDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// FormatOptionalText renders a nullable string for chat output.
func FormatOptionalText(ns models.NullString) string {
	if !ns.Valid || ns.String == "" {
		return "-"
	}
	return ns.String
}

// TitleCaseStatus renders a canonical attendance status for chat display
// ("half-day" -> "Half-Day").
func TitleCaseStatus(status string) string {
	parts := strings.Split(status, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}
