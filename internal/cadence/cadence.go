// Package cadence converts amounts and dates between pay frequencies and
// canonical monthly figures.
package cadence

import (
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

// Per-period divisors for splitting a monthly amount across paychecks.
// These are fixed averages, not calendar-exact: the catch-up engine and
// the budget views are tuned to the same constants, so they must not be
// replaced with recomputed exact values.
const (
	WeeklyDivisor      = 4.33
	BiweeklyDivisor    = 2.17
	SemiMonthlyDivisor = 2.0
	MonthlyDivisor     = 1.0
)

// ToMonthly converts a per-period amount to a monthly figure using the
// fixed periods-per-year table (52/26/24/12). Negative or zero input
// passes through unchanged; callers validate.
func ToMonthly(freq model.PayFrequency, perPeriod float64) float64 {
	switch freq {
	case model.Weekly:
		return perPeriod * 52 / 12
	case model.Biweekly:
		return perPeriod * 26 / 12
	case model.SemiMonthly:
		return perPeriod * 24 / 12
	default:
		return perPeriod
	}
}

// ToPerPeriod converts a monthly amount to a per-period figure using the
// fixed divisor table.
func ToPerPeriod(freq model.PayFrequency, monthly float64) float64 {
	return monthly / Divisor(freq)
}

// Divisor returns the per-period divisor for a frequency.
func Divisor(freq model.PayFrequency) float64 {
	switch freq {
	case model.Weekly:
		return WeeklyDivisor
	case model.Biweekly:
		return BiweeklyDivisor
	case model.SemiMonthly:
		return SemiMonthlyDivisor
	default:
		return MonthlyDivisor
	}
}

// PeriodLengthDays returns the approximate length of one pay period in
// days. Semi-monthly and monthly use fixed 15/30-day approximations.
func PeriodLengthDays(freq model.PayFrequency) int {
	switch freq {
	case model.Weekly:
		return 7
	case model.Biweekly:
		return 14
	case model.SemiMonthly:
		return 15
	default:
		return 30
	}
}

// AdvancePayDate moves a pay date forward by n periods using
// calendar-correct arithmetic: weekly and biweekly add whole weeks,
// semi-monthly adds n*15 days, monthly adds n calendar months.
func AdvancePayDate(freq model.PayFrequency, date time.Time, n int) time.Time {
	if n <= 0 {
		return date
	}
	switch freq {
	case model.Weekly:
		return date.AddDate(0, 0, 7*n)
	case model.Biweekly:
		return date.AddDate(0, 0, 14*n)
	case model.SemiMonthly:
		return date.AddDate(0, 0, 15*n)
	default:
		return date.AddDate(0, n, 0)
	}
}
