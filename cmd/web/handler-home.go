package main

import (
	"errors"
	"net/http"

	"github.com/sdeery14/fitness-app-sub000/internal/coach"
	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
)

type homeTemplateData struct {
	BaseTemplateData
	HasPlan      bool
	PlanName     string
	PlanMarkdown string
	Summary      planner.SummaryResult
	Chat         []coach.Message
	FormError    string
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.renderHome(w, r, http.StatusOK, "")
}

// renderHome renders the home page with an optional error message for the plan form.
func (app *application) renderHome(w http.ResponseWriter, r *http.Request, status int, formError string) {
	ctx := r.Context()
	sessionID := contexthelpers.PlanSessionID(ctx)

	data := homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		HasPlan:          false,
		PlanName:         "",
		PlanMarkdown:     "",
		Summary:          app.planner.Summary(ctx, sessionID, app.summaryDays),
		Chat:             app.chatHistory(ctx),
		FormError:        formError,
	}

	plan, err := app.planner.CurrentPlan(ctx, sessionID)
	switch {
	case err == nil:
		data.HasPlan = true
		data.PlanName = plan.Name
		data.PlanMarkdown = fitnessplan.Format(plan, fitnessplan.StyleDefault)
	case errors.Is(err, planner.ErrNoPlan):
	default:
		app.serverError(w, r, err)
		return
	}

	app.render(w, r, status, "home", data)
}
