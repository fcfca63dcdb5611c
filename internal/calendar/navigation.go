// Package calendar computes which window of a schedule to display and lays events out in month, week and day views.
//
// Navigation is plain date arithmetic. Nothing here modifies a schedule.
package calendar

import (
	"strings"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
)

// Granularity is the unit a calendar view displays and navigates by.
type Granularity string

const (
	Month Granularity = "month"
	Week  Granularity = "week"
	Day   Granularity = "day"
)

// ParseGranularity accepts "month", "Month View", "WEEK" and the like. Anything unknown is Month.
func ParseGranularity(s string) Granularity {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "view"))
	switch Granularity(s) {
	case Week:
		return Week
	case Day:
		return Day
	case Month:
		return Month
	default:
		return Month
	}
}

// Next moves the view date forward by one unit of g.
func Next(view fitnessplan.Date, g Granularity) fitnessplan.Date {
	return move(view, g, 1)
}

// Prev moves the view date back by one unit of g.
func Prev(view fitnessplan.Date, g Granularity) fitnessplan.Date {
	return move(view, g, -1)
}

func move(view fitnessplan.Date, g Granularity, n int) fitnessplan.Date {
	switch g {
	case Week:
		return view.AddDays(7 * n) //nolint:mnd // days in a week
	case Day:
		return view.AddDays(n)
	case Month:
		return AddMonths(view, n)
	default:
		return AddMonths(view, n)
	}
}

// AddMonths adds n months to d. The day is clamped to the length of the target month, so January 31 plus one month
// is the last day of February.
func AddMonths(d fitnessplan.Date, n int) fitnessplan.Date {
	first := fitnessplan.NewDate(d.Year(), d.Month()+time.Month(n), 1)
	return fitnessplan.NewDate(first.Year(), first.Month(), min(d.Day(), first.DaysIn()))
}

// GoToToday returns today's date in now's location for any granularity.
func GoToToday(_ Granularity, now time.Time) fitnessplan.Date {
	return fitnessplan.DateOf(now)
}

//nolint:gochecknoglobals // read-only parse layouts.
var jumpLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateTime,
	"2006/01/02",
	"01/02/2006",
}

// JumpToDate normalises raw into a date to display.
//
// raw may be a date or datetime string, a time.Time, a fitnessplan.Date or unix seconds. Input that cannot be read
// as a date yields today so that a bad value never breaks rendering.
func JumpToDate(raw any, _ Granularity, now time.Time) fitnessplan.Date {
	if d, ok := normalize(raw, now.Location()); ok {
		return d
	}
	return fitnessplan.DateOf(now)
}

func normalize(raw any, loc *time.Location) (fitnessplan.Date, bool) {
	switch v := raw.(type) {
	case string:
		return parseDateString(v)
	case *string:
		if v == nil {
			return fitnessplan.Date{}, false
		}
		return parseDateString(*v)
	case time.Time:
		return dateOfTime(v)
	case *time.Time:
		if v == nil {
			return fitnessplan.Date{}, false
		}
		return dateOfTime(*v)
	case fitnessplan.Date:
		return v, !v.IsZero()
	case *fitnessplan.Date:
		if v == nil {
			return fitnessplan.Date{}, false
		}
		return *v, !v.IsZero()
	case int:
		return fitnessplan.DateOf(time.Unix(int64(v), 0).In(loc)), true
	case int64:
		return fitnessplan.DateOf(time.Unix(v, 0).In(loc)), true
	case float64:
		return fitnessplan.DateOf(time.Unix(int64(v), 0).In(loc)), true
	default:
		return fitnessplan.Date{}, false
	}
}

func dateOfTime(t time.Time) (fitnessplan.Date, bool) {
	if t.IsZero() {
		return fitnessplan.Date{}, false
	}
	return fitnessplan.DateOf(t), true
}

func parseDateString(s string) (fitnessplan.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fitnessplan.Date{}, false
	}
	for _, layout := range jumpLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fitnessplan.DateOf(t), true
		}
	}
	return fitnessplan.Date{}, false
}

// Window returns the first and last date displayed by a view of granularity g around view.
func Window(view fitnessplan.Date, g Granularity) (fitnessplan.Date, fitnessplan.Date) {
	switch g {
	case Day:
		return view, view
	case Week:
		monday := StartOfWeek(view)
		return monday, monday.AddDays(6) //nolint:mnd // Monday to Sunday
	case Month:
		return monthWindow(view)
	default:
		return monthWindow(view)
	}
}

func monthWindow(view fitnessplan.Date) (fitnessplan.Date, fitnessplan.Date) {
	first := fitnessplan.NewDate(view.Year(), view.Month(), 1)
	return first, fitnessplan.NewDate(view.Year(), view.Month(), first.DaysIn())
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d fitnessplan.Date) fitnessplan.Date {
	offset := (int(d.Weekday()) + 6) % 7 //nolint:mnd // shift Sunday=0 to Monday=0
	return d.AddDays(-offset)
}
