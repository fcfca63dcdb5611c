package main

import (
	"net/http"
	"strings"

	"github.com/sdeery14/fitness-app-sub000/internal/contexthelpers"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

type planCreatedResponse struct {
	Plan          string             `json:"plan"`
	ScheduledDays int                `json:"scheduled_days"`
	Warnings      []schedule.Warning `json:"warnings,omitempty"`
}

type planHistoryResponse struct {
	Plans []fitnessplan.FitnessPlan `json:"plans"`
}

// planPOST replaces the plan of the session with the plan in the request body.
func (app *application) planPOST(w http.ResponseWriter, r *http.Request) {
	plan, err := fitnessplan.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		app.writeJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	result, err := app.planner.SetPlan(r.Context(), contexthelpers.PlanSessionID(r.Context()), plan)
	if err != nil {
		if errors.Is(err, fitnessplan.ErrInvalidPlanShape) {
			app.writeJSONError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/plan")
	app.writeJSON(w, r, http.StatusCreated, planCreatedResponse{
		Plan:          plan.Name,
		ScheduledDays: len(result.Days),
		Warnings:      result.Warnings,
	})
}

func (app *application) planGET(w http.ResponseWriter, r *http.Request) {
	plan, err := app.planner.CurrentPlan(r.Context(), contexthelpers.PlanSessionID(r.Context()))
	if err != nil {
		if errors.Is(err, planner.ErrNoPlan) {
			app.writeJSONError(w, r, http.StatusNotFound, planner.MessageNoPlan)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, plan)
}

func (app *application) planDELETE(w http.ResponseWriter, r *http.Request) {
	if err := app.planner.ClearPlan(r.Context(), contexthelpers.PlanSessionID(r.Context())); err != nil {
		app.serverError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (app *application) planHistoryGET(w http.ResponseWriter, r *http.Request) {
	plans, err := app.planner.History(r.Context(), contexthelpers.PlanSessionID(r.Context()))
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if plans == nil {
		plans = []fitnessplan.FitnessPlan{}
	}
	app.writeJSON(w, r, http.StatusOK, planHistoryResponse{Plans: plans})
}

// planFormPOST handles the plan upload form of the home page.
func (app *application) planFormPOST(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		app.renderHome(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	raw := strings.TrimSpace(r.PostForm.Get("plan"))
	if raw == "" {
		app.renderHome(w, r, http.StatusUnprocessableEntity, "Paste a plan in JSON format.")
		return
	}
	plan, err := fitnessplan.Decode(strings.NewReader(raw))
	if err == nil {
		_, err = app.planner.SetPlan(r.Context(), contexthelpers.PlanSessionID(r.Context()), plan)
	}
	if err != nil {
		if errors.Is(err, fitnessplan.ErrInvalidPlanShape) {
			app.renderHome(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// planClearPOST handles the clear plan form of the home page.
func (app *application) planClearPOST(w http.ResponseWriter, r *http.Request) {
	if err := app.planner.ClearPlan(r.Context(), contexthelpers.PlanSessionID(r.Context())); err != nil {
		app.serverError(w, r, err)
		return
	}
	redirect(w, r, "/")
}
