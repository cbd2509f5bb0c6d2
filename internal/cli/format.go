// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatUSD formats a dollar amount with precision scaled to its size.
// Statusline costs are often sub-cent, so small values keep four decimals.
// e.g., 0.0042 -> "$0.0042", 1.234 -> "$1.23", 123.4 -> "$123"
func FormatUSD(v float64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 100:
		return fmt.Sprintf("%s$%.0f", neg, v)
	case v >= 10:
		return fmt.Sprintf("%s$%.1f", neg, v)
	case v >= 1:
		return fmt.Sprintf("%s$%.2f", neg, v)
	case v >= 0.01:
		return fmt.Sprintf("%s$%.3f", neg, v)
	case v > 0:
		return fmt.Sprintf("%s$%.4f", neg, v)
	default:
		return "$0.00"
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatTimeAgo renders a past timestamp relative to now.
// e.g., "2m ago", "3h ago", "5d ago"
func FormatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
