// Package goal computes savings-goal progress, required contributions,
// and schedule alerts.
package goal

import (
	"math"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

// Progress returns goal completion as a percentage clamped to [0, 100].
// A non-positive target reports zero progress.
func Progress(currentAmount, targetAmount float64) float64 {
	if targetAmount <= 0 {
		return 0
	}
	progress := currentAmount / targetAmount * 100
	return math.Min(math.Max(0, progress), 100)
}

// MonthlyTarget splits a target amount evenly across a timeline.
// Returns 0 for a non-positive timeline rather than dividing by zero.
func MonthlyTarget(targetAmount float64, timelineMonths int) float64 {
	if timelineMonths <= 0 {
		return 0
	}
	return targetAmount / float64(timelineMonths)
}

// RequiredMonthlyTarget returns the monthly contribution needed to close
// the remaining gap within the timeline, 0 when no time remains.
func RequiredMonthlyTarget(currentAmount, targetAmount float64, timelineMonths int) float64 {
	if timelineMonths <= 0 {
		return 0
	}
	return (targetAmount - currentAmount) / float64(timelineMonths)
}

// RequiredMonthlyContribution returns the monthly amount needed for a
// named goal to hit its target date, 0 when the date has passed.
func RequiredMonthlyContribution(g model.Goal, now time.Time) float64 {
	return RequiredMonthlyTarget(g.CurrentAmount, g.TargetAmount, MonthsBetween(now, g.TargetDate))
}

// OnTrack reports whether the goal's configured contribution keeps pace
// with what the target date requires.
func OnTrack(g model.Goal, now time.Time) bool {
	return g.MonthlyContribution >= RequiredMonthlyContribution(g, now)
}

// ProjectedCompletionDate estimates when the goal completes at its
// current contribution rate. With no contribution the target date is
// returned unchanged.
func ProjectedCompletionDate(g model.Goal, now time.Time) time.Time {
	if g.MonthlyContribution <= 0 {
		return g.TargetDate
	}
	remaining := g.TargetAmount - g.CurrentAmount
	months := int(math.Ceil(remaining / g.MonthlyContribution))
	if months < 0 {
		months = 0
	}
	return now.AddDate(0, months, 0)
}

// TimeToGoal returns whole months until an amount is reached at the
// given monthly rate, +Inf when the rate is non-positive.
func TimeToGoal(currentAmount, targetAmount, monthlyRate float64) float64 {
	if monthlyRate <= 0 {
		return math.Inf(1)
	}
	return math.Ceil((targetAmount - currentAmount) / monthlyRate)
}

// MonthsBetween counts calendar-month boundaries between two dates,
// ignoring days within the month. Negative when end precedes start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}
