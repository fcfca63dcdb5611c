package calendar_test

import (
	"testing"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/calendar"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/ptr"
)

func TestParseGranularity(t *testing.T) {
	tests := map[string]calendar.Granularity{
		"month":      calendar.Month,
		"Month View": calendar.Month,
		"WEEK":       calendar.Week,
		"Week View":  calendar.Week,
		" day ":      calendar.Day,
		"Day View":   calendar.Day,
		"":           calendar.Month,
		"fortnight":  calendar.Month,
	}
	for in, want := range tests {
		if got := calendar.ParseGranularity(in); got != want {
			t.Errorf("ParseGranularity(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNextPrev(t *testing.T) {
	tests := []struct {
		name string
		from string
		g    calendar.Granularity
		next string
		prev string
	}{
		{name: "month mid", from: "2024-05-15", g: calendar.Month, next: "2024-06-15", prev: "2024-04-15"},
		{name: "month clamps to leap february", from: "2024-01-31", g: calendar.Month, next: "2024-02-29", prev: "2023-12-31"},
		{name: "month clamps backwards", from: "2024-03-31", g: calendar.Month, next: "2024-04-30", prev: "2024-02-29"},
		{name: "month rolls the year", from: "2023-12-15", g: calendar.Month, next: "2024-01-15", prev: "2023-11-15"},
		{name: "week", from: "2024-01-01", g: calendar.Week, next: "2024-01-08", prev: "2023-12-25"},
		{name: "day rolls the year", from: "2024-12-31", g: calendar.Day, next: "2025-01-01", prev: "2024-12-30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := fitnessplan.MustParseDate(tt.from)
			if got := calendar.Next(from, tt.g).String(); got != tt.next {
				t.Errorf("Next() = %s, want %s", got, tt.next)
			}
			if got := calendar.Prev(from, tt.g).String(); got != tt.prev {
				t.Errorf("Prev() = %s, want %s", got, tt.prev)
			}
		})
	}
}

func TestGoToToday(t *testing.T) {
	now := time.Date(2024, time.June, 3, 22, 15, 0, 0, time.UTC)
	for _, g := range []calendar.Granularity{calendar.Month, calendar.Week, calendar.Day} {
		if got := calendar.GoToToday(g, now).String(); got != "2024-06-03" {
			t.Errorf("GoToToday(%s) = %s", g, got)
		}
	}
}

func TestJumpToDate(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	var nilTime *time.Time

	tests := []struct {
		name string
		raw  any
		want string
	}{
		{name: "date only", raw: "2024-03-05", want: "2024-03-05"},
		{name: "padded", raw: "  2024-03-05 ", want: "2024-03-05"},
		{name: "rfc3339", raw: "2024-03-05T23:30:00Z", want: "2024-03-05"},
		{name: "rfc3339 with offset", raw: "2024-03-05T01:30:00+02:00", want: "2024-03-05"},
		{name: "datetime", raw: "2024-03-05T10:00:00", want: "2024-03-05"},
		{name: "datetime with space", raw: "2024-03-05 10:00:00", want: "2024-03-05"},
		{name: "us date", raw: "03/05/2024", want: "2024-03-05"},
		{name: "time", raw: time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC), want: "2024-03-05"},
		{name: "time pointer", raw: ptr.Ref(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)), want: "2024-03-05"},
		{name: "date", raw: fitnessplan.MustParseDate("2024-03-05"), want: "2024-03-05"},
		{name: "unix seconds", raw: int64(1709640000), want: "2024-03-05"},
		{name: "unix seconds float", raw: float64(1709640000), want: "2024-03-05"},
		{name: "not a date", raw: "not-a-date", want: "2024-06-03"},
		{name: "empty", raw: "", want: "2024-06-03"},
		{name: "nil", raw: nil, want: "2024-06-03"},
		{name: "nil time pointer", raw: nilTime, want: "2024-06-03"},
		{name: "zero date", raw: fitnessplan.Date{}, want: "2024-06-03"},
		{name: "unsupported type", raw: struct{}{}, want: "2024-06-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.JumpToDate(tt.raw, calendar.Month, now)
			if got.String() != tt.want {
				t.Errorf("JumpToDate(%v) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestJumpToDate_invalidInputShowsTodaysMonth(t *testing.T) {
	now := time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)
	g := calendar.ParseGranularity("Month View")

	date := calendar.JumpToDate("not-a-date", g, now)
	from, to := calendar.Window(date, g)
	if from.String() != "2024-06-01" || to.String() != "2024-06-30" {
		t.Errorf("Window() = %s..%s, want the current month", from, to)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		date     string
		g        calendar.Granularity
		from, to string
	}{
		{date: "2024-02-10", g: calendar.Month, from: "2024-02-01", to: "2024-02-29"},
		{date: "2024-01-03", g: calendar.Week, from: "2024-01-01", to: "2024-01-07"},
		{date: "2024-01-07", g: calendar.Week, from: "2024-01-01", to: "2024-01-07"},
		{date: "2024-12-31", g: calendar.Week, from: "2024-12-30", to: "2025-01-05"},
		{date: "2024-01-03", g: calendar.Day, from: "2024-01-03", to: "2024-01-03"},
	}
	for _, tt := range tests {
		from, to := calendar.Window(fitnessplan.MustParseDate(tt.date), tt.g)
		if from.String() != tt.from || to.String() != tt.to {
			t.Errorf("Window(%s, %s) = %s..%s, want %s..%s", tt.date, tt.g, from, to, tt.from, tt.to)
		}
	}
}
