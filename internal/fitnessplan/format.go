package fitnessplan

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects how much detail Format renders.
type Style string

const (
	StyleDefault  Style = "default"
	StyleMinimal  Style = "minimal"
	StyleDetailed Style = "detailed"
)

// ParseStyle returns the style named s, falling back to StyleDefault.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleMinimal:
		return StyleMinimal
	case StyleDetailed:
		return StyleDetailed
	default:
		return StyleDefault
	}
}

// Prescription summarises the optional fields of the exercise, e.g. "4 x 8, 30 min".
func (e Exercise) Prescription() string {
	var parts []string
	switch {
	case e.Sets != nil && e.Reps != nil:
		parts = append(parts, fmt.Sprintf("%d x %d", *e.Sets, *e.Reps))
	case e.Sets != nil:
		parts = append(parts, fmt.Sprintf("%d sets", *e.Sets))
	case e.Reps != nil:
		parts = append(parts, fmt.Sprintf("%d reps", *e.Reps))
	}
	if e.Duration != nil {
		parts = append(parts, formatDuration(*e.Duration))
	}
	if e.Distance != nil {
		parts = append(parts, formatDistance(*e.Distance))
	}
	if e.Intensity != nil {
		parts = append(parts, string(*e.Intensity))
	}
	return strings.Join(parts, ", ")
}

func formatDuration(seconds int) string {
	if seconds >= 60 && seconds%60 == 0 {
		return fmt.Sprintf("%d min", seconds/60)
	}
	return fmt.Sprintf("%d s", seconds)
}

func formatDistance(meters float64) string {
	if meters >= 1000 { //nolint:mnd // meters in a kilometer
		return strconv.FormatFloat(meters/1000, 'f', -1, 64) + " km" //nolint:mnd // see above
	}
	return strconv.FormatFloat(meters, 'f', -1, 64) + " m"
}

// Format renders the plan as markdown.
func Format(p FitnessPlan, style Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Goal != "" {
		fmt.Fprintf(&b, "**Goal:** %s\n\n", p.Goal)
	}

	if style == StyleMinimal {
		for _, period := range p.TrainingPlan.TrainingPeriods {
			fmt.Fprintf(&b, "- %s: %s (%d-day cycle)\n", period.Name, period.TrainingSplit.Name,
				len(period.TrainingSplit.TrainingDays))
		}
		writeFooter(&b, p)
		return b.String()
	}

	if p.Description != "" {
		fmt.Fprintf(&b, "## Overview\n\n%s\n\n", p.Description)
	}
	writeTrainingPlan(&b, p.TrainingPlan, style)
	writeMeals(&b, p, style)
	writeFooter(&b, p)
	return b.String()
}

func writeTrainingPlan(b *strings.Builder, tp TrainingPlan, style Style) {
	fmt.Fprintf(b, "## Training Plan: %s\n\n", tp.Name)
	if tp.Description != "" {
		fmt.Fprintf(b, "%s\n\n", tp.Description)
	}
	for _, period := range tp.TrainingPeriods {
		fmt.Fprintf(b, "### %s", period.Name)
		if period.StartDate != nil && !period.StartDate.IsZero() {
			fmt.Fprintf(b, " (from %s, %s)\n\n", period.StartDate, period.Intensity.Label())
		} else {
			fmt.Fprintf(b, " (%s)\n\n", period.Intensity.Label())
		}
		if period.Description != "" {
			fmt.Fprintf(b, "%s\n\n", period.Description)
		}
		split := period.TrainingSplit
		fmt.Fprintf(b, "**Split:** %s (%d-day cycle)\n\n", split.Name, len(split.TrainingDays))
		for i, day := range split.TrainingDays {
			if day.IsRestDay() {
				fmt.Fprintf(b, "%d. **%s** - rest day\n", i+1, day.Name)
				continue
			}
			fmt.Fprintf(b, "%d. **%s** - %s, %s\n", i+1, day.Name, day.Intensity.Label(), day.ExerciseLabel())
			if style == StyleDetailed && day.Description != "" {
				fmt.Fprintf(b, "   %s\n", day.Description)
			}
			for _, exercise := range day.Exercises {
				if prescription := exercise.Prescription(); prescription != "" {
					fmt.Fprintf(b, "   - %s: %s\n", exercise.Name, prescription)
				} else {
					fmt.Fprintf(b, "   - %s\n", exercise.Name)
				}
				if style == StyleDetailed && exercise.Description != "" {
					fmt.Fprintf(b, "     %s\n", exercise.Description)
				}
			}
		}
		b.WriteString("\n")
	}
}

func writeMeals(b *strings.Builder, p FitnessPlan, style Style) {
	if p.MealPlan == nil {
		if p.MealGuidance != "" {
			fmt.Fprintf(b, "## Meal Plan\n\n%s\n\n", p.MealGuidance)
		}
		return
	}
	fmt.Fprintf(b, "## Meal Plan: %s\n\n", p.MealPlan.Name)
	if p.MealPlan.Description != "" {
		fmt.Fprintf(b, "%s\n\n", p.MealPlan.Description)
	}
	for _, period := range p.MealPlan.MealPeriods {
		fmt.Fprintf(b, "### %s (%s, intensity %s)\n\n", period.Name, period.CaloricPhase,
			strconv.FormatFloat(period.Intensity, 'f', -1, 64))
		if period.Description != "" {
			fmt.Fprintf(b, "%s\n\n", period.Description)
		}
		if style != StyleDetailed {
			continue
		}
		for _, template := range period.DailyTemplates {
			fmt.Fprintf(b, "**%s**\n\n", template.Name)
			for _, slot := range template.Slots {
				options := make([]string, 0, len(slot.Options))
				for _, option := range slot.Options {
					options = append(options, option.Name)
				}
				fmt.Fprintf(b, "- %s: %s\n", slot.Name, strings.Join(options, " or "))
			}
			b.WriteString("\n")
		}
	}
}

func writeFooter(b *strings.Builder, p FitnessPlan) {
	b.WriteString("\n---\n\n")
	switch {
	case p.StartDate != nil && p.TargetDate != nil:
		fmt.Fprintf(b, "*Runs from %s to %s.*\n", p.StartDate, p.TargetDate)
	case p.TargetDate != nil:
		fmt.Fprintf(b, "*Runs until %s.*\n", p.TargetDate)
	default:
		b.WriteString("*No target date set.*\n")
	}
}
