package goal

import (
	"fmt"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

// AlertThresholds tunes alert generation. The defaults carry over the
// original product values; they are settings, not derived numbers.
type AlertThresholds struct {
	// Milestones are progress percentages that each fire one alert,
	// ascending order expected.
	Milestones []float64
	// BehindMargin is how many percentage points actual progress may
	// trail the linear expectation before a "behind" alert fires.
	BehindMargin float64
	// DeadlineMonths is how close the target date must be to warn.
	DeadlineMonths int
	// DeadlineProgressCutoff suppresses the deadline warning once
	// progress reaches this percentage.
	DeadlineProgressCutoff float64
}

// DefaultThresholds returns the stock alert configuration.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{
		Milestones:             []float64{25, 50, 75},
		BehindMargin:           10,
		DeadlineMonths:         3,
		DeadlineProgressCutoff: 90,
	}
}

// CheckAlerts evaluates a goal against the thresholds and returns any
// newly fired alerts together with the updated milestone watermark.
//
// Milestones use the goal's persisted HighestMilestone watermark: every
// threshold at or below current progress that exceeds the watermark
// fires exactly once, even when progress jumps across several
// thresholds between checks. The caller persists the returned watermark
// (and appends the alerts) on the goal; CheckAlerts never mutates its
// input.
func CheckAlerts(g model.Goal, now time.Time, th AlertThresholds) ([]model.GoalAlert, float64) {
	progress := Progress(g.CurrentAmount, g.TargetAmount)
	watermark := g.HighestMilestone
	var alerts []model.GoalAlert

	for _, milestone := range th.Milestones {
		if progress >= milestone && milestone > watermark {
			alerts = append(alerts, newAlert(model.AlertMilestone,
				fmt.Sprintf("%.0f%% of your goal achieved!", milestone), milestone, now))
			watermark = milestone
		}
	}

	// Behind schedule: compare against linear progress from creation to
	// target date.
	totalMonths := MonthsBetween(g.CreatedAt, g.TargetDate)
	if totalMonths > 0 {
		elapsed := MonthsBetween(g.CreatedAt, now)
		expected := float64(elapsed) / float64(totalMonths) * 100
		if progress < expected-th.BehindMargin {
			alerts = append(alerts, newAlert(model.AlertBehind,
				"You're falling behind on your goal", expected-progress, now))
		}
	}

	// Deadline approaching with a significant amount remaining.
	monthsLeft := MonthsBetween(now, g.TargetDate)
	if monthsLeft <= th.DeadlineMonths && progress < th.DeadlineProgressCutoff {
		alerts = append(alerts, newAlert(model.AlertDeadline,
			"Goal deadline approaching with significant amount remaining",
			float64(monthsLeft), now))
	}

	return alerts, watermark
}

// ApplyAlerts runs CheckAlerts and returns a copy of the goal with the
// new alerts appended and the milestone watermark advanced.
func ApplyAlerts(g model.Goal, now time.Time, th AlertThresholds) model.Goal {
	alerts, watermark := CheckAlerts(g, now, th)
	out := g
	out.Alerts = append(append([]model.GoalAlert(nil), g.Alerts...), alerts...)
	out.HighestMilestone = watermark
	return out
}

func newAlert(alertType model.AlertType, message string, threshold float64, now time.Time) model.GoalAlert {
	return model.GoalAlert{
		ID:        model.NewID(),
		Type:      alertType,
		Message:   message,
		Threshold: threshold,
		CreatedAt: now,
	}
}
