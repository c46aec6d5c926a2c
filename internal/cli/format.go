// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats an amount with a currency symbol, comma separators and
// two decimals. e.g., ("£", 1234.5) -> "£1,234.50", ("£", -5) -> "-£5.00"
func FormatMoney(symbol string, v float64) string {
	if v < 0 {
		return "-" + FormatMoney(symbol, -v)
	}
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s%s.%02d", symbol, FormatNumber(cents/100), cents%100)
}

// FormatMoneyShort formats an amount without decimals for compact displays.
// e.g., ("£", 1234.5) -> "£1,235"
func FormatMoneyShort(symbol string, v float64) string {
	if v < 0 {
		return "-" + FormatMoneyShort(symbol, -v)
	}
	return symbol + FormatNumber(int64(math.Round(v)))
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

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatPct formats a value already expressed in percent.
// e.g., 35 -> "35.0%"
func FormatPct(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the difference between two amounts with an explicit sign.
func FormatDelta(symbol string, current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(symbol, delta)
	}
	return FormatMoney(symbol, delta)
}

// FormatDays returns "1 day" or "N days".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return FormatNumber(int64(n)) + " days"
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
