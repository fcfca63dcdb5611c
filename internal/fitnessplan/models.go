// Package fitnessplan contains the periodized fitness plan model produced by the coaching agent.
//
// A FitnessPlan holds a TrainingPlan made of ordered TrainingPeriods. Each period repeats one TrainingSplit, the
// micro-cycle of TrainingDays, until the next period starts. Values are treated as immutable once decoded.
package fitnessplan

import (
	"fmt"
	"strings"
)

// IntensityLevel grades the load of an exercise, a day or a period.
type IntensityLevel string

const (
	IntensityRest      IntensityLevel = "rest"
	IntensityLight     IntensityLevel = "light"
	IntensityModerate  IntensityLevel = "moderate"
	IntensityHeavy     IntensityLevel = "heavy"
	IntensityMaxEffort IntensityLevel = "max_effort"
)

// IntensityLevels lists the levels from the least to the most strenuous.
func IntensityLevels() []IntensityLevel {
	return []IntensityLevel{IntensityRest, IntensityLight, IntensityModerate, IntensityHeavy, IntensityMaxEffort}
}

// Rank orders the levels, rest being 0 and max effort 4. Unknown levels rank -1.
func (l IntensityLevel) Rank() int {
	for i, level := range IntensityLevels() {
		if level == l {
			return i
		}
	}
	return -1
}

func (l IntensityLevel) Valid() bool {
	return l.Rank() >= 0
}

// Label is the human readable name, e.g. "Max Effort".
func (l IntensityLevel) Label() string {
	words := strings.Split(string(l), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Exercise is a single movement prescription. All prescription fields are optional.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Duration in seconds.
	Duration *int `json:"duration,omitempty"`
	// Distance in meters.
	Distance  *float64        `json:"distance,omitempty"`
	Sets      *int            `json:"sets,omitempty"`
	Reps      *int            `json:"reps,omitempty"`
	Intensity *IntensityLevel `json:"intensity,omitempty"`
}

// TrainingDay is one day of a split.
type TrainingDay struct {
	Name string `json:"name"`
	// OrderNumber is the 1-based position within the split.
	OrderNumber int            `json:"order_number"`
	Description string         `json:"description"`
	Exercises   []Exercise     `json:"exercises"`
	Intensity   IntensityLevel `json:"intensity"`
}

// IsRestDay reports whether the day carries no training load.
//
// A day is a rest day when it has no exercises, when its intensity is rest or when its name mentions rest.
// Every renderer classifies days through this method.
func (d TrainingDay) IsRestDay() bool {
	return len(d.Exercises) == 0 ||
		d.Intensity == IntensityRest ||
		strings.Contains(strings.ToLower(d.Name), "rest")
}

// ExerciseLabel counts the day's exercises, e.g. "1 exercise" or "5 exercises".
func (d TrainingDay) ExerciseLabel() string {
	if len(d.Exercises) == 1 {
		return "1 exercise"
	}
	return fmt.Sprintf("%d exercises", len(d.Exercises))
}

// TrainingSplit is the repeating cycle of days. Its length is the cycle length which is not necessarily 7.
type TrainingSplit struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	TrainingDays []TrainingDay `json:"training_days"`
}

// TrainingPeriod is a phase of the plan such as base building or peaking.
type TrainingPeriod struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// StartDate is optional. Without it the period starts the day after the previous one ended.
	StartDate     *Date          `json:"start_date,omitempty"`
	Intensity     IntensityLevel `json:"intensity"`
	TrainingSplit TrainingSplit  `json:"training_split"`
}

// TrainingPlan orders periods chronologically by their position in TrainingPeriods.
type TrainingPlan struct {
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	TrainingPeriods []TrainingPeriod `json:"training_periods"`
}

// FitnessPlan is the root of the plan produced for a user.
type FitnessPlan struct {
	Name         string       `json:"name"`
	Goal         string       `json:"goal"`
	Description  string       `json:"description"`
	TrainingPlan TrainingPlan `json:"training_plan"`
	MealPlan     *MealPlan    `json:"meal_plan,omitempty"`
	// MealGuidance is free text used when the agent does not produce a structured meal plan.
	MealGuidance string `json:"meal_guidance,omitempty"`
	// StartDate defaults to the day the plan is scheduled.
	StartDate *Date `json:"start_date,omitempty"`
	// TargetDate is the absolute end of the schedule.
	TargetDate *Date `json:"target_date,omitempty"`
}

// ExerciseCount sums the exercises over every training day of every period.
func (p FitnessPlan) ExerciseCount() int {
	n := 0
	for _, period := range p.TrainingPlan.TrainingPeriods {
		for _, day := range period.TrainingSplit.TrainingDays {
			n += len(day.Exercises)
		}
	}
	return n
}
