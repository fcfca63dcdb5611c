package calendar

import (
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

// Cell is one day of a calendar view.
type Cell struct {
	Date fitnessplan.Date
	// InMonth is false for the leading and trailing days of a month grid.
	InMonth bool
	IsToday bool
	Events  []schedule.Event
}

// View is a laid out window of the calendar.
type View struct {
	Granularity Granularity
	Date        fitnessplan.Date
	Title       string
	From        fitnessplan.Date
	To          fitnessplan.Date
	// Weeks holds rows of seven cells starting on Monday. Day views have a single row with a single cell.
	Weeks [][]Cell
}

// Prev is the view date one unit back.
func (v View) Prev() fitnessplan.Date { return Prev(v.Date, v.Granularity) }

// Next is the view date one unit forward.
func (v View) Next() fitnessplan.Date { return Next(v.Date, v.Granularity) }

// EventCount is the number of events in the window.
func (v View) EventCount() int {
	n := 0
	for _, week := range v.Weeks {
		for _, c := range week {
			if c.InMonth {
				n += len(c.Events)
			}
		}
	}
	return n
}

// Layout places events into the view of granularity g around date.
func Layout(date fitnessplan.Date, g Granularity, events []schedule.Event, today fitnessplan.Date) View {
	switch g {
	case Day:
		return DayView(date, events, today)
	case Week:
		return WeekView(date, events, today)
	case Month:
		return MonthView(date, events, today)
	default:
		return MonthView(date, events, today)
	}
}

// MonthView lays out the month containing date as a Monday-first grid.
func MonthView(date fitnessplan.Date, events []schedule.Event, today fitnessplan.Date) View {
	from, to := Window(date, Month)
	byDate := indexEvents(events)

	var weeks [][]Cell
	for monday := StartOfWeek(from); !monday.After(to); monday = monday.AddDays(7) { //nolint:mnd // next row
		week := make([]Cell, 0, 7) //nolint:mnd // days in a week
		for i := range 7 {
			d := monday.AddDays(i)
			inMonth := d.Month() == date.Month()
			c := cell(d, byDate, today)
			c.InMonth = inMonth
			week = append(week, c)
		}
		weeks = append(weeks, week)
	}
	return View{
		Granularity: Month,
		Date:        date,
		Title:       date.Time().Format("January 2006"),
		From:        from,
		To:          to,
		Weeks:       weeks,
	}
}

// WeekView lays out the Monday to Sunday week containing date.
func WeekView(date fitnessplan.Date, events []schedule.Event, today fitnessplan.Date) View {
	from, to := Window(date, Week)
	byDate := indexEvents(events)
	week := make([]Cell, 0, 7) //nolint:mnd // days in a week
	for d := from; !d.After(to); d = d.AddDays(1) {
		week = append(week, cell(d, byDate, today))
	}
	return View{
		Granularity: Week,
		Date:        date,
		Title:       weekTitle(from, to),
		From:        from,
		To:          to,
		Weeks:       [][]Cell{week},
	}
}

// DayView lays out the single day date.
func DayView(date fitnessplan.Date, events []schedule.Event, today fitnessplan.Date) View {
	return View{
		Granularity: Day,
		Date:        date,
		Title:       date.Time().Format("Monday, January 2, 2006"),
		From:        date,
		To:          date,
		Weeks:       [][]Cell{{cell(date, indexEvents(events), today)}},
	}
}

func weekTitle(from, to fitnessplan.Date) string {
	if from.Year() != to.Year() {
		return from.Time().Format("Jan 2, 2006") + " - " + to.Time().Format("Jan 2, 2006")
	}
	if from.Month() != to.Month() {
		return from.Time().Format("Jan 2") + " - " + to.Time().Format("Jan 2, 2006")
	}
	return from.Time().Format("Jan 2") + " - " + to.Time().Format("2, 2006")
}

func cell(d fitnessplan.Date, byDate map[string][]schedule.Event, today fitnessplan.Date) Cell {
	return Cell{
		Date:    d,
		InMonth: true,
		IsToday: d.Equal(today),
		Events:  byDate[d.String()],
	}
}

func indexEvents(events []schedule.Event) map[string][]schedule.Event {
	byDate := make(map[string][]schedule.Event, len(events))
	for _, e := range events {
		key := e.Date.String()
		byDate[key] = append(byDate[key], e)
	}
	return byDate
}

// Between returns the events dated from..to inclusive.
func Between(events []schedule.Event, from, to fitnessplan.Date) []schedule.Event {
	var out []schedule.Event
	for _, e := range events {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
