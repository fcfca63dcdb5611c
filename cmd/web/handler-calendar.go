package main

import (
	"bytes"
	"net/http"

	"github.com/sdeery14/fitness-app-sub000/internal/calendar"
	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
)

type calendarTemplateData struct {
	BaseTemplateData
	View          calendar.View
	Granularities []calendar.Granularity
	Reason        planner.Reason
	Message       string
}

// calendarGET renders the calendar view.
//
// Query parameters: view (month, week or day), date (anything calendar.JumpToDate accepts) and nav (prev, next or
// today) which moves the view relative to date.
func (app *application) calendarGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	now := app.planner.Now()
	g := calendar.ParseGranularity(q.Get("view"))

	date := calendar.GoToToday(g, now)
	if raw := q.Get("date"); raw != "" {
		date = calendar.JumpToDate(raw, g, now)
	}
	switch q.Get("nav") {
	case "prev":
		date = calendar.Prev(date, g)
	case "next":
		date = calendar.Next(date, g)
	case "today":
		date = calendar.GoToToday(g, now)
	}

	result := app.planner.Events(ctx, contexthelpers.PlanSessionID(ctx))
	data := calendarTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		View:             calendar.Layout(date, g, result.Events, app.planner.Today()),
		Granularities:    []calendar.Granularity{calendar.Month, calendar.Week, calendar.Day},
		Reason:           result.Reason,
		Message:          result.Message,
	}
	app.render(w, r, http.StatusOK, "calendar", data)
}

// calendarICSGET exports the schedule as an iCalendar file.
func (app *application) calendarICSGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := contexthelpers.PlanSessionID(ctx)
	result := app.planner.Events(ctx, sessionID)
	if result.Reason == planner.ReasonError {
		app.serverError(w, r, errors.New(result.Message))
		return
	}

	name := "Training"
	if plan, err := app.planner.CurrentPlan(ctx, sessionID); err == nil {
		name = plan.Name
	}

	var buf bytes.Buffer
	if err := calendar.WriteICS(&buf, name, result.Events, app.planner.Now()); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="fitness-plan.ics"`)
	_, _ = buf.WriteTo(w)
}
