package model

import "time"

// FixedExpenseCategories are the well-known budget categories every
// snapshot starts with. User-defined categories live in CustomExpenses.
var FixedExpenseCategories = []string{
	"housing", "transportation", "food", "utilities", "entertainment",
}

// DefaultUserData returns a fresh snapshot for a new user: monthly pay
// frequency, a 12-month savings timeline, and the fixed expense
// categories zeroed out. The initial next pay date lands on the first of
// the month at least two weeks out.
func DefaultUserData(now time.Time) UserData {
	return UserData{
		SavingsGoal: SavingsGoal{
			TimelineMonths: 12,
			StartDate:      now,
			Goals:          []Goal{},
		},
		Budget: Budget{
			Expenses:       defaultExpenses(),
			CustomExpenses: []ExpenseCategory{},
			PaySchedule: PaySchedule{
				Frequency:   Monthly,
				FirstPayDay: 1,
				NextPayDate: startOfMonth(now.AddDate(0, 0, 14)),
			},
			ExpenseAllocation: AllocateEvenly,
		},
		Transactions: []Transaction{},
		Debts:        []DebtAccount{},
	}
}

func defaultExpenses() map[string]float64 {
	expenses := make(map[string]float64, len(FixedExpenseCategories))
	for _, name := range FixedExpenseCategories {
		expenses[name] = 0
	}
	return expenses
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
