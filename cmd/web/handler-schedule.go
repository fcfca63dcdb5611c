package main

import (
	"net/http"
	"strconv"

	"github.com/sdeery14/fitness-app-sub000/internal/calendar"
	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

// scheduleSummaryGET responds with the text summary of the next days. Missing plans and empty schedules are
// reported in the reason field with status 200.
func (app *application) scheduleSummaryGET(w http.ResponseWriter, r *http.Request) {
	days := app.summaryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			app.writeJSONError(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	result := app.planner.Summary(r.Context(), contexthelpers.PlanSessionID(r.Context()), days)
	app.writeJSON(w, r, http.StatusOK, result)
}

// calendarEventsGET responds with the calendar events of the session. With a date parameter the events are limited
// to the window of the view parameter around that date.
func (app *application) calendarEventsGET(w http.ResponseWriter, r *http.Request) {
	result := app.planner.Events(r.Context(), contexthelpers.PlanSessionID(r.Context()))
	q := r.URL.Query()
	if raw := q.Get("date"); raw != "" {
		g := calendar.ParseGranularity(q.Get("view"))
		from, to := calendar.Window(calendar.JumpToDate(raw, g, app.planner.Now()), g)
		result.Events = calendar.Between(result.Events, from, to)
		if result.Events == nil {
			result.Events = []schedule.Event{}
		}
	}
	app.writeJSON(w, r, http.StatusOK, result)
}
