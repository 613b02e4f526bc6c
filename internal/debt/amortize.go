// Package debt produces amortization projections for debt accounts.
package debt

import (
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

// MaxPeriods caps a schedule at 30 years of monthly payments.
const MaxPeriods = 360

// Amortize projects a monthly payment schedule for a debt until payoff.
// Each period accrues interest at APR/12, applies the remainder of the
// payment to principal, and advances one calendar month. The loop stops
// when the balance reaches zero, when the payment no longer covers the
// accrued interest (the schedule would never converge), or at MaxPeriods.
func Amortize(debt model.DebtAccount, monthlyPayment float64, startDate time.Time) []model.AmortizationEntry {
	var schedule []model.AmortizationEntry
	balance := debt.Balance
	date := startDate
	monthlyRate := debt.InterestRate / 100 / 12

	for balance > 0 && len(schedule) < MaxPeriods {
		interest := balance * monthlyRate
		principal := monthlyPayment - interest
		if principal > balance {
			principal = balance
		}
		balance -= principal

		schedule = append(schedule, model.AmortizationEntry{
			Date:             date,
			Payment:          monthlyPayment,
			Principal:        principal,
			Interest:         interest,
			RemainingBalance: balance,
		})

		date = date.AddDate(0, 1, 0)

		if monthlyPayment <= interest {
			break
		}
	}

	return schedule
}

// PayoffDate returns the date of the final schedule entry, or the zero
// time for an empty schedule.
func PayoffDate(schedule []model.AmortizationEntry) time.Time {
	if len(schedule) == 0 {
		return time.Time{}
	}
	return schedule[len(schedule)-1].Date
}

// TotalInterest sums the interest paid across the whole schedule.
func TotalInterest(schedule []model.AmortizationEntry) float64 {
	var total float64
	for _, entry := range schedule {
		total += entry.Interest
	}
	return total
}

// PaidOff reports whether the schedule actually retires the debt.
// False means the 360-period cap or the insufficient-payment guard
// ended the schedule early; callers display "Never" for the payoff date.
func PaidOff(schedule []model.AmortizationEntry) bool {
	if len(schedule) == 0 {
		return false
	}
	return schedule[len(schedule)-1].RemainingBalance <= 0
}

// MinimumPaymentTotal sums the minimum payments across all debts.
func MinimumPaymentTotal(debts []model.DebtAccount) float64 {
	var total float64
	for _, d := range debts {
		total += d.MinimumPayment
	}
	return total
}

var typeLabels = map[model.DebtType]string{
	model.DebtCreditCard:   "Credit Card",
	model.DebtStudentLoan:  "Student Loan",
	model.DebtCarLoan:      "Car Loan",
	model.DebtPersonalLoan: "Personal Loan",
	model.DebtMortgage:     "Mortgage",
	model.DebtOther:        "Other",
}

// TypeLabel returns a display label for a debt type.
func TypeLabel(t model.DebtType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return "Other"
}
