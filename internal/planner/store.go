// Package planner keeps the current fitness plan of each planning session and serves its schedule.
package planner

import (
	"context"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

var (
	// ErrNoPlan is returned when the session has no current plan.
	ErrNoPlan = errors.NewSentinel("no plan")
	// ErrNoSchedule is returned when the session has a plan but no stored schedule.
	ErrNoSchedule = errors.NewSentinel("no schedule")
)

// Store persists plan state per session id.
//
// Implementations must make each call atomic. Callers that read and then write serialise per session themselves.
type Store interface {
	// CurrentPlan returns ErrNoPlan when nothing is set.
	CurrentPlan(ctx context.Context, sessionID string) (fitnessplan.FitnessPlan, error)
	// SetPlan replaces the current plan and its schedule together. The replaced plan is appended to the history.
	// A nil days slice stores the plan without a schedule.
	SetPlan(ctx context.Context, sessionID string, plan fitnessplan.FitnessPlan, days []schedule.ScheduledTrainingDay) error
	// Schedule returns ErrNoPlan without a plan and ErrNoSchedule when the schedule has not been stored.
	Schedule(ctx context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, error)
	// SetSchedule stores the schedule of the current plan. It returns ErrNoPlan without a plan.
	SetSchedule(ctx context.Context, sessionID string, days []schedule.ScheduledTrainingDay) error
	// Clear removes the current plan and schedule. The cleared plan is appended to the history.
	Clear(ctx context.Context, sessionID string) error
	// History lists replaced and cleared plans, oldest first.
	History(ctx context.Context, sessionID string) ([]fitnessplan.FitnessPlan, error)
}
