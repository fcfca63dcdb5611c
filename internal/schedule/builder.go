// Package schedule expands a periodized fitness plan into dated training days and renders them.
//
// Everything in this package is a pure function of its inputs. "Today" is always passed in.
package schedule

import (
	"fmt"
	"log/slog"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// DefaultHorizonDays caps plans whose last period has no end.
const DefaultHorizonDays = 365

// ScheduledTrainingDay is one training day pinned to a calendar date.
type ScheduledTrainingDay struct {
	Date        fitnessplan.Date        `json:"date"`
	TrainingDay fitnessplan.TrainingDay `json:"training_day"`
	SplitName   string                  `json:"split_name"`
	PeriodName  string                  `json:"period_name"`
	// WeekNumber counts cycles through the split within the current period, starting at 1.
	WeekNumber int `json:"week_number"`
	// DayInWeek is the 1-based position within the cycle.
	DayInWeek int `json:"day_in_week"`
}

// IsRestDay is shorthand for TrainingDay.IsRestDay.
func (d ScheduledTrainingDay) IsRestDay() bool {
	return d.TrainingDay.IsRestDay()
}

// WarningCode identifies a non-fatal condition encountered while building.
type WarningCode string

// WarningUnboundedSchedule means the last period had no end and the schedule was cut at the horizon.
const WarningUnboundedSchedule WarningCode = "unbounded_schedule"

type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Options tune Build.
type Options struct {
	// StartDate overrides the plan's start date.
	StartDate *fitnessplan.Date
	// Today is the fallback start date when neither StartDate nor the plan has one.
	Today fitnessplan.Date
	// HorizonDays caps open-ended plans. Zero means DefaultHorizonDays.
	HorizonDays int
}

// Result is the output of Build.
type Result struct {
	Days     []ScheduledTrainingDay `json:"days"`
	Warnings []Warning              `json:"warnings,omitempty"`
}

// Build expands plan into dated training days.
//
// Periods are walked in list order. A period starts on its own start date, or the day after the previous period's
// last date. It ends the day before the next period's start date. A period followed by a period without a start
// date lasts exactly one cycle, and the last period ends on the plan's target date. Nothing is scheduled after the
// target date. Days are assigned one per calendar date and both ends are inclusive.
//
// The week number of a cycle increments only when the whole cycle fits in the period. A truncated trailing cycle
// keeps the previous number.
func Build(plan fitnessplan.FitnessPlan, opts Options) (Result, error) {
	if err := plan.Validate(); err != nil {
		return Result{}, fmt.Errorf("build schedule: %w", err)
	}

	start := effectiveStart(plan, opts)
	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	var (
		result  Result
		current = start
		periods = plan.TrainingPlan.TrainingPeriods
	)
	target, hasTarget := optionalDate(plan.TargetDate)

	for i, period := range periods {
		days := period.TrainingSplit.TrainingDays
		if len(days) == 0 {
			// Validate rejects this already. Keep the walk below from spinning on an empty cycle.
			return Result{}, errors.Wrap(fitnessplan.ErrInvalidPlanShape, "split has no training days",
				slog.String("period", period.Name))
		}

		periodStart, ok := optionalDate(period.StartDate)
		if !ok {
			periodStart = current
		}

		var periodEnd fitnessplan.Date
		switch {
		case i+1 < len(periods):
			if nextStart, hasNext := optionalDate(periods[i+1].StartDate); hasNext {
				periodEnd = nextStart.AddDays(-1)
			} else {
				periodEnd = periodStart.AddDays(len(days) - 1)
				// Never run into a later period that has a fixed start.
				if laterStart, hasLater := nextExplicitStart(periods[i+1:]); hasLater {
					periodEnd = fitnessplan.Min(periodEnd, laterStart.AddDays(-1))
				}
			}
		case hasTarget:
			periodEnd = target
		default:
			periodEnd = start.AddDays(horizon - 1)
			result.Warnings = append(result.Warnings, Warning{
				Code: WarningUnboundedSchedule,
				Message: fmt.Sprintf("plan has no target date, schedule stops after %d days on %s",
					horizon, periodEnd),
			})
		}
		if hasTarget {
			periodEnd = fitnessplan.Min(periodEnd, target)
		}

		walked, last, walkedAny := walkPeriod(period, periodStart, periodEnd, start)
		result.Days = append(result.Days, walked...)
		if walkedAny {
			current = last.AddDays(1)
		}
	}

	return result, nil
}

// walkPeriod assigns the period's split days to consecutive dates in [from, to].
//
// Dates before notBefore are walked to keep cycle counting stable but are not emitted. It returns the last walked date
// and whether any date was walked.
func walkPeriod(
	period fitnessplan.TrainingPeriod,
	from, to, notBefore fitnessplan.Date,
) ([]ScheduledTrainingDay, fitnessplan.Date, bool) {
	if to.Before(from) {
		return nil, fitnessplan.Date{}, false
	}

	var (
		days       = period.TrainingSplit.TrainingDays
		cycleLen   = len(days)
		totalDays  = to.Sub(from) + 1
		fullCycles = totalDays / cycleLen
		out        = make([]ScheduledTrainingDay, 0, totalDays)
		date       = from
		weekNumber = 0
	)

	for cycle := 0; date.Compare(to) <= 0; cycle++ {
		if cycle < fullCycles || weekNumber == 0 {
			weekNumber = cycle + 1
		}
		for i, day := range days {
			if date.After(to) {
				break
			}
			if !date.Before(notBefore) {
				out = append(out, ScheduledTrainingDay{
					Date:        date,
					TrainingDay: day,
					SplitName:   period.TrainingSplit.Name,
					PeriodName:  period.Name,
					WeekNumber:  weekNumber,
					DayInWeek:   i + 1,
				})
			}
			date = date.AddDays(1)
		}
	}

	return out, date.AddDays(-1), true
}

func effectiveStart(plan fitnessplan.FitnessPlan, opts Options) fitnessplan.Date {
	if d, ok := optionalDate(opts.StartDate); ok {
		return d
	}
	if d, ok := optionalDate(plan.StartDate); ok {
		return d
	}
	return opts.Today
}

func nextExplicitStart(periods []fitnessplan.TrainingPeriod) (fitnessplan.Date, bool) {
	for _, p := range periods {
		if d, ok := optionalDate(p.StartDate); ok {
			return d, true
		}
	}
	return fitnessplan.Date{}, false
}

func optionalDate(d *fitnessplan.Date) (fitnessplan.Date, bool) {
	if d == nil || d.IsZero() {
		return fitnessplan.Date{}, false
	}
	return *d, true
}
