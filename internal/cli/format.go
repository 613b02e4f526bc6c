// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mikeintech/budgetterrr/internal/model"
)

// FormatMoney formats a dollar amount with comma grouping and two
// decimal places. e.g., 1234.5 -> "$1,234.50"
func FormatMoney(amount float64) string {
	return FormatMoneyWith("$", amount)
}

// FormatMoneyWith formats a dollar amount with a custom currency symbol.
func FormatMoneyWith(symbol string, amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupDigits(intPart)

	if neg {
		return "-" + symbol + grouped + "." + fracPart
	}
	return symbol + grouped + "." + fracPart
}

// FormatMoneyDelta formats a signed dollar change. e.g., "+$120.00"
func FormatMoneyDelta(amount float64) string {
	if amount >= 0 {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
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

// FormatPercent formats a 0-100 progress value. e.g., 42.5 -> "42.5%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate formats a date for display, or "—" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// FormatMonths formats a month count, with "Never" for an unreachable
// projection. e.g., 18 -> "18 months", 1 -> "1 month"
func FormatMonths(months float64) string {
	if math.IsInf(months, 1) {
		return "Never"
	}
	n := int(math.Ceil(months))
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

// FormatFrequency returns a display label for a pay frequency.
func FormatFrequency(f model.PayFrequency) string {
	switch f {
	case model.Weekly:
		return "Weekly"
	case model.Biweekly:
		return "Every 2 weeks"
	case model.SemiMonthly:
		return "Twice a month"
	case model.Monthly:
		return "Monthly"
	default:
		return string(f)
	}
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
