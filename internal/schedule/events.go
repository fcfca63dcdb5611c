package schedule

import (
	"fmt"
	"slices"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// Calendar colors by intensity.
const (
	ColorLight     = "#10b981"
	ColorModerate  = "#f59e0b"
	ColorHeavy     = "#ef4444"
	ColorMaxEffort = "#8b5cf6"
	ColorRest      = "#6b7280"
)

// ColorFor returns the calendar color of a training day. Rest days are always gray.
func ColorFor(day fitnessplan.TrainingDay) string {
	if day.IsRestDay() {
		return ColorRest
	}
	switch day.Intensity {
	case fitnessplan.IntensityLight:
		return ColorLight
	case fitnessplan.IntensityModerate:
		return ColorModerate
	case fitnessplan.IntensityHeavy:
		return ColorHeavy
	case fitnessplan.IntensityMaxEffort:
		return ColorMaxEffort
	case fitnessplan.IntensityRest:
		return ColorRest
	default:
		return ColorRest
	}
}

// EventExercise is the exercise shape the calendar UI consumes.
type EventExercise struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Sets        *int     `json:"sets,omitempty"`
	Reps        *int     `json:"reps,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
}

// Event is one calendar entry. The field set is the contract with the calendar UI.
type Event struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Date        fitnessplan.Date `json:"date"`
	Color       string           `json:"color"`
	Description string           `json:"description"`
	SplitName   string           `json:"split_name"`
	WeekNumber  int              `json:"week_number"`
	DayInWeek   int              `json:"day_in_week"`
	Intensity   string           `json:"intensity"`
	IsRestDay   bool             `json:"is_rest_day"`
	Exercises   []EventExercise  `json:"exercises"`
}

// EventID is the stable identifier of the event on date.
func EventID(date fitnessplan.Date) string {
	return "training-" + date.String()
}

// ToCalendarEvents converts the schedule to one event per date ordered by date.
//
// When a date occurs more than once the first occurrence wins.
func ToCalendarEvents(days []ScheduledTrainingDay) []Event {
	seen := make(map[string]struct{}, len(days))
	events := make([]Event, 0, len(days))
	for _, day := range days {
		key := day.Date.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		events = append(events, toEvent(day))
	}
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.Date.Compare(b.Date)
	})
	return events
}

func toEvent(day ScheduledTrainingDay) Event {
	td := day.TrainingDay
	rest := td.IsRestDay()
	title := "Rest Day"
	if !rest {
		title = fmt.Sprintf("%s (%s)", td.Name, td.ExerciseLabel())
	}
	exercises := make([]EventExercise, 0, len(td.Exercises))
	for _, e := range td.Exercises {
		exercises = append(exercises, EventExercise{
			Name:        e.Name,
			Description: e.Description,
			Sets:        e.Sets,
			Reps:        e.Reps,
			Duration:    e.Duration,
			Distance:    e.Distance,
		})
	}
	return Event{
		ID:          EventID(day.Date),
		Title:       title,
		Date:        day.Date,
		Color:       ColorFor(td),
		Description: td.Description,
		SplitName:   day.SplitName,
		WeekNumber:  day.WeekNumber,
		DayInWeek:   day.DayInWeek,
		Intensity:   string(td.Intensity),
		IsRestDay:   rest,
		Exercises:   exercises,
	}
}
