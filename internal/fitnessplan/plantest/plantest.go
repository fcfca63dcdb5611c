// Package plantest builds fitness plans for tests.
package plantest

import (
	"fmt"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/ptr"
)

// Day builds a training day with n generic exercises.
func Day(order int, name string, intensity fitnessplan.IntensityLevel, n int) fitnessplan.TrainingDay {
	exercises := make([]fitnessplan.Exercise, 0, n)
	for i := range n {
		exercises = append(exercises, fitnessplan.Exercise{
			Name:        fmt.Sprintf("%s exercise %d", name, i+1),
			Description: "",
			Duration:    nil,
			Distance:    nil,
			Sets:        ptr.Ref(3),  //nolint:mnd // typical prescription
			Reps:        ptr.Ref(10), //nolint:mnd // typical prescription
			Intensity:   nil,
		})
	}
	return fitnessplan.TrainingDay{
		Name:        name,
		OrderNumber: order,
		Description: "",
		Exercises:   exercises,
		Intensity:   intensity,
	}
}

// RestDay builds a day without exercises.
func RestDay(order int) fitnessplan.TrainingDay {
	return fitnessplan.TrainingDay{
		Name:        "Rest",
		OrderNumber: order,
		Description: "Recover",
		Exercises:   nil,
		Intensity:   fitnessplan.IntensityRest,
	}
}

// WeekSplit is a seven day split with six training days and a rest day at the end.
//
//nolint:mnd // fixture
func WeekSplit(name string) fitnessplan.TrainingSplit {
	return fitnessplan.TrainingSplit{
		Name:        name,
		Description: "",
		TrainingDays: []fitnessplan.TrainingDay{
			Day(1, "Push", fitnessplan.IntensityHeavy, 5),
			Day(2, "Pull", fitnessplan.IntensityHeavy, 5),
			Day(3, "Legs", fitnessplan.IntensityModerate, 4),
			Day(4, "Conditioning", fitnessplan.IntensityLight, 2),
			Day(5, "Upper", fitnessplan.IntensityModerate, 6),
			Day(6, "Lower", fitnessplan.IntensityMaxEffort, 3),
			RestDay(7),
		},
	}
}

// Period builds a period. start may be empty for a period without an explicit start date.
func Period(name, start string, split fitnessplan.TrainingSplit) fitnessplan.TrainingPeriod {
	var startDate *fitnessplan.Date
	if start != "" {
		startDate = ptr.Ref(fitnessplan.MustParseDate(start))
	}
	return fitnessplan.TrainingPeriod{
		Name:          name,
		Description:   "",
		StartDate:     startDate,
		Intensity:     fitnessplan.IntensityModerate,
		TrainingSplit: split,
	}
}

// Plan builds a plan. start and target may be empty.
func Plan(start, target string, periods ...fitnessplan.TrainingPeriod) fitnessplan.FitnessPlan {
	plan := fitnessplan.FitnessPlan{
		Name:        "Strength Block",
		Goal:        "Get stronger",
		Description: "Twelve weeks of strength work.",
		TrainingPlan: fitnessplan.TrainingPlan{
			Name:            "Strength",
			Description:     "",
			TrainingPeriods: periods,
		},
		MealPlan:     nil,
		MealGuidance: "",
		StartDate:    nil,
		TargetDate:   nil,
	}
	if start != "" {
		plan.StartDate = ptr.Ref(fitnessplan.MustParseDate(start))
	}
	if target != "" {
		plan.TargetDate = ptr.Ref(fitnessplan.MustParseDate(target))
	}
	return plan
}
