package schedule_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan/plantest"
	"github.com/sdeery14/fitness-app-sub000/internal/ptr"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

func buildTwoWeeks(t *testing.T) []schedule.ScheduledTrainingDay {
	t.Helper()
	plan := plantest.Plan("2024-01-01", "2024-01-14",
		plantest.Period("Base", "2024-01-01", plantest.WeekSplit("PPL")))
	result, err := schedule.Build(plan, schedule.Options{})
	if err != nil {
		t.Fatalf("Failed to build schedule: %v", err)
	}
	return result.Days
}

func TestFormatSummary(t *testing.T) {
	days := buildTwoWeeks(t)

	t.Run("groups by split and week", func(t *testing.T) {
		got := schedule.FormatSummary(days, schedule.SummaryOptions{
			Today:      fitnessplan.MustParseDate("2024-01-06"),
			DaysToShow: 3,
		})
		want := "Upcoming training:\n" +
			"\nPPL, week 1\n" +
			"  Sat 2024-01-06: Lower (max_effort, 3 exercises)\n" +
			"  Sun 2024-01-07: Rest (rest day)\n" +
			"\nPPL, week 2\n" +
			"  Mon 2024-01-08: Push (heavy, 5 exercises)\n"
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("FormatSummary() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single exercise", func(t *testing.T) {
		single := slices.Clone(days)
		single[0].TrainingDay = plantest.Day(1, "Push", fitnessplan.IntensityHeavy, 1)
		got := schedule.FormatSummary(single, schedule.SummaryOptions{
			Today:      fitnessplan.MustParseDate("2024-01-01"),
			DaysToShow: 1,
		})
		if !strings.Contains(got, "Mon 2024-01-01: Push (heavy, 1 exercise)\n") {
			t.Errorf("FormatSummary() = %q", got)
		}
		if title := schedule.ToCalendarEvents(single)[0].Title; title != "Push (1 exercise)" {
			t.Errorf("event title = %q", title)
		}
	})

	t.Run("defaults to fourteen days", func(t *testing.T) {
		got := schedule.FormatSummary(days, schedule.SummaryOptions{Today: fitnessplan.MustParseDate("2023-12-01")})
		if lines := strings.Count(got, "\n  "); lines != schedule.DefaultDaysToShow {
			t.Errorf("expected %d day lines, got %d:\n%s", schedule.DefaultDaysToShow, lines, got)
		}
	})

	t.Run("nothing upcoming", func(t *testing.T) {
		got := schedule.FormatSummary(days, schedule.SummaryOptions{Today: fitnessplan.MustParseDate("2024-02-01")})
		if got != schedule.NoUpcomingDays {
			t.Errorf("FormatSummary() = %q", got)
		}
	})
}

func TestToCalendarEvents(t *testing.T) {
	days := buildTwoWeeks(t)
	// A duplicate date must not produce a second event.
	days = append(days, days[0])

	events := schedule.ToCalendarEvents(days)
	if len(events) != 14 {
		t.Fatalf("expected 14 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if !events[i].Date.After(events[i-1].Date) {
			t.Errorf("events not ordered by date at %d", i)
		}
	}

	push := events[0]
	want := schedule.Event{
		ID:          "training-2024-01-01",
		Title:       "Push (5 exercises)",
		Date:        fitnessplan.MustParseDate("2024-01-01"),
		Color:       schedule.ColorHeavy,
		Description: "",
		SplitName:   "PPL",
		WeekNumber:  1,
		DayInWeek:   1,
		Intensity:   "heavy",
		IsRestDay:   false,
		Exercises:   push.Exercises,
	}
	if diff := cmp.Diff(want, push); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}
	if len(push.Exercises) != 5 || *push.Exercises[0].Sets != 3 || *push.Exercises[0].Reps != 10 {
		t.Errorf("unexpected exercises: %+v", push.Exercises)
	}

	rest := events[6]
	if rest.Title != "Rest Day" || !rest.IsRestDay || rest.Color != schedule.ColorRest {
		t.Errorf("unexpected rest event: %+v", rest)
	}
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		name string
		day  fitnessplan.TrainingDay
		want string
	}{
		{name: "light", day: plantest.Day(1, "Easy", fitnessplan.IntensityLight, 1), want: schedule.ColorLight},
		{name: "moderate", day: plantest.Day(1, "Tempo", fitnessplan.IntensityModerate, 1), want: schedule.ColorModerate},
		{name: "heavy", day: plantest.Day(1, "Squat", fitnessplan.IntensityHeavy, 4), want: schedule.ColorHeavy},
		{name: "max effort", day: plantest.Day(1, "Test", fitnessplan.IntensityMaxEffort, 1), want: schedule.ColorMaxEffort},
		{name: "heavy but empty is rest", day: plantest.Day(1, "Squat", fitnessplan.IntensityHeavy, 0), want: schedule.ColorRest},
		{name: "rest intensity", day: plantest.Day(1, "Walk", fitnessplan.IntensityRest, 1), want: schedule.ColorRest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.ColorFor(tt.day); got != tt.want {
				t.Errorf("ColorFor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRestDayClassificationIsConsistent(t *testing.T) {
	emptyDay := plantest.Day(1, "Recovery", fitnessplan.IntensityLight, 0)
	restIntensity := plantest.Day(2, "Walk", fitnessplan.IntensityRest, 2)
	split := fitnessplan.TrainingSplit{
		Name:         "Recovery",
		Description:  "",
		TrainingDays: []fitnessplan.TrainingDay{emptyDay, restIntensity},
	}
	plan := plantest.Plan("2024-01-01", "2024-01-02", plantest.Period("Deload", "", split))
	result, err := schedule.Build(plan, schedule.Options{})
	if err != nil {
		t.Fatalf("Failed to build schedule: %v", err)
	}

	summary := schedule.FormatSummary(result.Days, schedule.SummaryOptions{Today: *plan.StartDate, DaysToShow: 2})
	if got := strings.Count(summary, "(rest day)"); got != 2 {
		t.Errorf("summary classified %d rest days, want 2:\n%s", got, summary)
	}
	for _, e := range schedule.ToCalendarEvents(result.Days) {
		if !e.IsRestDay || e.Title != "Rest Day" {
			t.Errorf("calendar did not classify %s as rest: %+v", e.Date, e)
		}
	}
}

func TestToCalendarEvents_exerciseFields(t *testing.T) {
	day := fitnessplan.TrainingDay{
		Name:        "Long run",
		OrderNumber: 1,
		Description: "Keep it easy",
		Exercises: []fitnessplan.Exercise{{
			Name:        "Run",
			Description: "Zone 2",
			Duration:    ptr.Ref(3600),
			Distance:    ptr.Ref(12000.0),
			Sets:        nil,
			Reps:        nil,
			Intensity:   nil,
		}},
		Intensity: fitnessplan.IntensityLight,
	}
	events := schedule.ToCalendarEvents([]schedule.ScheduledTrainingDay{{
		Date:        fitnessplan.MustParseDate("2024-04-07"),
		TrainingDay: day,
		SplitName:   "Run week",
		PeriodName:  "Base",
		WeekNumber:  3,
		DayInWeek:   7,
	}})
	want := []schedule.EventExercise{{
		Name:        "Run",
		Description: "Zone 2",
		Sets:        nil,
		Reps:        nil,
		Duration:    ptr.Ref(3600),
		Distance:    ptr.Ref(12000.0),
	}}
	if diff := cmp.Diff(want, events[0].Exercises); diff != "" {
		t.Errorf("exercises mismatch (-want +got):\n%s", diff)
	}
	if events[0].Description != "Keep it easy" || events[0].Color != schedule.ColorLight {
		t.Errorf("unexpected event: %+v", events[0])
	}
}
