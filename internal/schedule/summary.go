package schedule

import (
	"fmt"
	"strings"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// DefaultDaysToShow is the number of upcoming days in a summary.
const DefaultDaysToShow = 14

// NoUpcomingDays is the summary of a schedule without days on or after today.
const NoUpcomingDays = "No upcoming training days."

// SummaryOptions tune FormatSummary.
type SummaryOptions struct {
	Today fitnessplan.Date
	// DaysToShow defaults to DefaultDaysToShow when not positive.
	DaysToShow int
}

// Upcoming returns the first n days dated on or after today.
func Upcoming(days []ScheduledTrainingDay, today fitnessplan.Date, n int) []ScheduledTrainingDay {
	if n <= 0 {
		n = DefaultDaysToShow
	}
	var out []ScheduledTrainingDay
	for _, day := range days {
		if day.Date.Before(today) {
			continue
		}
		out = append(out, day)
		if len(out) == n {
			break
		}
	}
	return out
}

// FormatSummary renders the upcoming days as text grouped by split and week.
//
//	Upcoming training:
//
//	PPL, week 1
//	  Mon 2024-01-01: Push (heavy, 5 exercises)
//	  Sun 2024-01-07: Rest (rest day)
func FormatSummary(days []ScheduledTrainingDay, opts SummaryOptions) string {
	upcoming := Upcoming(days, opts.Today, opts.DaysToShow)
	if len(upcoming) == 0 {
		return NoUpcomingDays
	}

	var (
		b         strings.Builder
		lastSplit string
		lastWeek  int
	)
	b.WriteString("Upcoming training:\n")
	for i, day := range upcoming {
		if i == 0 || day.SplitName != lastSplit || day.WeekNumber != lastWeek {
			fmt.Fprintf(&b, "\n%s, week %d\n", day.SplitName, day.WeekNumber)
			lastSplit, lastWeek = day.SplitName, day.WeekNumber
		}
		fmt.Fprintf(&b, "  %s\n", summaryLine(day))
	}
	return b.String()
}

func summaryLine(day ScheduledTrainingDay) string {
	date := day.Date.Time().Format("Mon 2006-01-02")
	if day.IsRestDay() {
		return fmt.Sprintf("%s: %s (rest day)", date, day.TrainingDay.Name)
	}
	return fmt.Sprintf("%s: %s (%s, %s)", date, day.TrainingDay.Name,
		day.TrainingDay.Intensity, day.TrainingDay.ExerciseLabel())
}
