package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
	"golang.org/x/sync/singleflight"
)

// Reason tells the UI why a result is empty.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonNoPlan     Reason = "no_plan"
	ReasonNoSchedule Reason = "no_schedule"
	ReasonError      Reason = "error"
)

// User facing messages for empty results.
const (
	MessageNoPlan     = "No fitness plan yet. Ask the coach or upload a plan to get started."
	MessageNoSchedule = "Your plan has no training days scheduled from today on."
	MessageError      = "Something went wrong while building your schedule. Please try again."
)

// SummaryResult is the text summary of upcoming training or the reason there is none.
type SummaryResult struct {
	Summary string `json:"summary"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// EventsResult holds the calendar events of a session or the reason there are none.
type EventsResult struct {
	Events  []schedule.Event `json:"events"`
	Reason  Reason           `json:"reason"`
	Message string           `json:"message"`
}

// Service coordinates plan changes and schedule reads of planning sessions.
type Service struct {
	store       Store
	logger      *slog.Logger
	now         func() time.Time
	horizonDays int

	builds  singleflight.Group
	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

// sessionLock is dropped from the lock table once no goroutine holds or waits for it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*Service)

// WithClock sets the source of "today". Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHorizonDays caps schedules of open-ended plans.
func WithHorizonDays(days int) Option {
	return func(s *Service) { s.horizonDays = days }
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:       store,
		logger:      logger,
		now:         time.Now,
		horizonDays: schedule.DefaultHorizonDays,
		builds:      singleflight.Group{},
		locksMu:     sync.Mutex{},
		locks:       make(map[string]*sessionLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSessionID returns an identifier for a new planning session.
func (s *Service) NewSessionID() string {
	return uuid.NewString()
}

// Now is the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// Today is the current date according to the service clock.
func (s *Service) Today() fitnessplan.Date {
	return fitnessplan.DateOf(s.now())
}

// lock serialises read-then-write sequences of one session.
func (s *Service) lock(sessionID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{mu: sync.Mutex{}, refs: 0}
		s.locks[sessionID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.locksMu.Unlock()
	}
}


func (s *Service) buildOptions() schedule.Options {
	return schedule.Options{StartDate: nil, Today: s.Today(), HorizonDays: s.horizonDays}
}

// SetPlan validates plan, builds its schedule and replaces the session's plan and schedule together.
// Nothing is stored when the plan is invalid.
func (s *Service) SetPlan(ctx context.Context, sessionID string, plan fitnessplan.FitnessPlan) (schedule.Result, error) {
	result, err := schedule.Build(plan, s.buildOptions())
	if err != nil {
		return schedule.Result{}, fmt.Errorf("set plan: %w", err)
	}
	if result.Days == nil {
		result.Days = []schedule.ScheduledTrainingDay{}
	}

	unlock := s.lock(sessionID)
	defer unlock()
	if err = s.store.SetPlan(ctx, sessionID, plan, result.Days); err != nil {
		return schedule.Result{}, fmt.Errorf("store plan: %w", err)
	}

	for _, w := range result.Warnings {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "schedule warning",
			slog.String("code", string(w.Code)), slog.String("message", w.Message))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan set",
		slog.String("plan", plan.Name), slog.Int("scheduled_days", len(result.Days)))
	return result, nil
}

// ClearPlan removes the session's plan and schedule.
func (s *Service) ClearPlan(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return nil
}

// CurrentPlan returns ErrNoPlan when the session has none.
func (s *Service) CurrentPlan(ctx context.Context, sessionID string) (fitnessplan.FitnessPlan, error) {
	plan, err := s.store.CurrentPlan(ctx, sessionID)
	if err != nil {
		return fitnessplan.FitnessPlan{}, fmt.Errorf("current plan: %w", err)
	}
	return plan, nil
}

// History lists the session's superseded plans, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]fitnessplan.FitnessPlan, error) {
	plans, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("plan history: %w", err)
	}
	return plans, nil
}

// Schedule returns the stored schedule, building and storing it from the current plan when missing.
// It returns ErrNoPlan when the session has no plan.
func (s *Service) Schedule(ctx context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, error) {
	days, err := s.store.Schedule(ctx, sessionID)
	if err == nil {
		return days, nil
	}
	if !errors.Is(err, ErrNoSchedule) {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	// Waiting callers share the rebuild, so it outlives the caller that started it.
	v, err, _ := s.builds.Do(sessionID, func() (any, error) {
		return s.rebuild(context.WithoutCancel(ctx), sessionID)
	})
	if err != nil {
		return nil, err
	}
	days, _ = v.([]schedule.ScheduledTrainingDay)
	return days, nil
}

func (s *Service) rebuild(ctx context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	// Another request may have stored the schedule while we waited for the lock.
	if days, err := s.store.Schedule(ctx, sessionID); err == nil {
		return days, nil
	}
	plan, err := s.store.CurrentPlan(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	result, err := schedule.Build(plan, s.buildOptions())
	if err != nil {
		return nil, fmt.Errorf("rebuild schedule: %w", err)
	}
	if result.Days == nil {
		result.Days = []schedule.ScheduledTrainingDay{}
	}
	if err = s.store.SetSchedule(ctx, sessionID, result.Days); err != nil {
		return nil, fmt.Errorf("store schedule: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "rebuilt schedule", slog.Int("scheduled_days", len(result.Days)))
	return result.Days, nil
}

// Summary renders the next days of the schedule. Failures are reported through the result's Reason.
func (s *Service) Summary(ctx context.Context, sessionID string, days int) SummaryResult {
	scheduled, reason := s.scheduleForDisplay(ctx, sessionID)
	if reason != ReasonNone {
		return SummaryResult{Summary: "", Reason: reason, Message: messageFor(reason)}
	}
	today := s.Today()
	if len(schedule.Upcoming(scheduled, today, days)) == 0 {
		return SummaryResult{Summary: "", Reason: ReasonNoSchedule, Message: MessageNoSchedule}
	}
	return SummaryResult{
		Summary: schedule.FormatSummary(scheduled, schedule.SummaryOptions{Today: today, DaysToShow: days}),
		Reason:  ReasonNone,
		Message: "",
	}
}

// Events returns the calendar events of the whole schedule. Failures are reported through the result's Reason.
func (s *Service) Events(ctx context.Context, sessionID string) EventsResult {
	scheduled, reason := s.scheduleForDisplay(ctx, sessionID)
	if reason != ReasonNone {
		return EventsResult{Events: []schedule.Event{}, Reason: reason, Message: messageFor(reason)}
	}
	if len(scheduled) == 0 {
		return EventsResult{Events: []schedule.Event{}, Reason: ReasonNoSchedule, Message: MessageNoSchedule}
	}
	return EventsResult{Events: schedule.ToCalendarEvents(scheduled), Reason: ReasonNone, Message: ""}
}

func (s *Service) scheduleForDisplay(ctx context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, Reason) {
	days, err := s.Schedule(ctx, sessionID)
	switch {
	case err == nil:
		return days, ReasonNone
	case errors.Is(err, ErrNoPlan):
		return nil, ReasonNoPlan
	default:
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load schedule", errors.SlogError(err))
		return nil, ReasonError
	}
}

func messageFor(reason Reason) string {
	switch reason {
	case ReasonNoPlan:
		return MessageNoPlan
	case ReasonNoSchedule:
		return MessageNoSchedule
	case ReasonError:
		return MessageError
	case ReasonNone:
		return ""
	default:
		return MessageError
	}
}
