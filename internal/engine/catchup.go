// Package engine advances a user snapshot through elapsed pay periods.
package engine

import (
	"time"

	"github.com/mikeintech/budgetterrr/internal/cadence"
	"github.com/mikeintech/budgetterrr/internal/model"
)

// CatchUp rolls a snapshot forward through every pay period that elapsed
// between the stored next pay date and now. For each period the paycheck
// lands, per-period expenses and savings come out, and the savings goal
// balance grows. The pay date advances calendar-correctly.
//
// The function is pure and idempotent for a fixed now: calling it twice
// yields the same snapshot as calling it once, so overlapping periodic
// invocations are safe without locking. It never fails; a zero or future
// next pay date returns the snapshot unchanged.
func CatchUp(data model.UserData, now time.Time) model.UserData {
	sched := data.Budget.PaySchedule
	if sched.NextPayDate.IsZero() || !now.After(sched.NextPayDate) {
		return data
	}

	periods := periodsElapsed(sched, now)
	if periods <= 0 {
		return data
	}

	savingsPerPeriod := cadence.ToPerPeriod(sched.Frequency, data.Budget.TargetSavings)
	expensesPerPeriod := cadence.ToPerPeriod(sched.Frequency, data.Budget.MonthlyExpenses())
	netChangePerPeriod := sched.Amount - expensesPerPeriod - savingsPerPeriod

	out := data.Clone()
	out.Budget.CurrentCash = data.Budget.CurrentCash + netChangePerPeriod*float64(periods)
	out.Budget.PaySchedule.NextPayDate = cadence.AdvancePayDate(sched.Frequency, sched.NextPayDate, periods)
	out.SavingsGoal.CurrentAmount = data.SavingsGoal.CurrentAmount + savingsPerPeriod*float64(periods)
	return out
}

// PeriodsElapsed reports how many whole pay periods fit between the
// stored next pay date and now.
func PeriodsElapsed(data model.UserData, now time.Time) int {
	sched := data.Budget.PaySchedule
	if sched.NextPayDate.IsZero() || !now.After(sched.NextPayDate) {
		return 0
	}
	return periodsElapsed(sched, now)
}

func periodsElapsed(sched model.PaySchedule, now time.Time) int {
	days := int(now.Sub(sched.NextPayDate).Hours() / 24)
	return days / cadence.PeriodLengthDays(sched.Frequency)
}
