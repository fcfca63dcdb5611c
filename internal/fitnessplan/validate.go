package fitnessplan

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
)

// ErrInvalidPlanShape is returned for structurally malformed plans. Malformed plans are never patched.
var ErrInvalidPlanShape = errors.NewSentinel("invalid plan shape")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPlanShape, fmt.Sprintf(format, args...))
}

// Validate reports every structural problem of the plan joined into one error wrapping ErrInvalidPlanShape.
//
// Explicit period start dates must be strictly increasing in list order.
func (p FitnessPlan) Validate() error {
	var problems []error

	periods := p.TrainingPlan.TrainingPeriods
	if len(periods) == 0 {
		problems = append(problems, invalid("training plan has no periods"))
	}

	var previousStart *Date
	for i, period := range periods {
		label := fmt.Sprintf("period %d (%s)", i+1, period.Name)
		if !period.Intensity.Valid() {
			problems = append(problems, invalid("%s: unknown intensity %q", label, period.Intensity))
		}
		if len(period.TrainingSplit.TrainingDays) == 0 {
			problems = append(problems, invalid("%s: split %q has no training days", label, period.TrainingSplit.Name))
		}
		for j, day := range period.TrainingSplit.TrainingDays {
			if !day.Intensity.Valid() {
				problems = append(problems, invalid("%s: day %d (%s): unknown intensity %q",
					label, j+1, day.Name, day.Intensity))
			}
			for _, exercise := range day.Exercises {
				if exercise.Intensity != nil && !exercise.Intensity.Valid() {
					problems = append(problems, invalid("%s: exercise %s: unknown intensity %q",
						label, exercise.Name, *exercise.Intensity))
				}
			}
		}
		if period.StartDate != nil && !period.StartDate.IsZero() {
			if previousStart != nil && !period.StartDate.After(*previousStart) {
				problems = append(problems, invalid("%s: start date %s is not after previous period start %s",
					label, period.StartDate, previousStart))
			}
			previousStart = period.StartDate
		}
	}

	if p.StartDate != nil && p.TargetDate != nil && p.TargetDate.Before(*p.StartDate) {
		problems = append(problems, invalid("target date %s is before start date %s", p.TargetDate, p.StartDate))
	}

	if p.MealPlan != nil {
		for i, period := range p.MealPlan.MealPeriods {
			if !period.CaloricPhase.Valid() {
				problems = append(problems, invalid("meal period %d (%s): unknown caloric phase %q",
					i+1, period.Name, period.CaloricPhase))
			}
			if period.Intensity < 0 || period.Intensity > 100 {
				problems = append(problems, invalid("meal period %d (%s): intensity %v outside 0-100",
					i+1, period.Name, period.Intensity))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(errors.Join(problems...), "validate plan", slog.String("plan", p.Name))
}

// Decode strictly decodes a single JSON plan from r and validates it.
//
// Unknown fields, trailing data and invalid shapes are errors. There is no lenient fallback.
func Decode(r io.Reader) (FitnessPlan, error) {
	var plan FitnessPlan
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plan); err != nil {
		return FitnessPlan{}, fmt.Errorf("%w: decode plan: %w", ErrInvalidPlanShape, err)
	}
	if dec.More() {
		return FitnessPlan{}, invalid("trailing data after plan")
	}
	if err := plan.Validate(); err != nil {
		return FitnessPlan{}, err
	}
	return plan, nil
}
