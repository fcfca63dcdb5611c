package planner

import (
	"context"
	"slices"
	"sync"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
)

type memorySession struct {
	plan    *fitnessplan.FitnessPlan
	days    []schedule.ScheduledTrainingDay
	history []fitnessplan.FitnessPlan
}

// MemoryStore keeps sessions in process memory. Useful for tests and the CLI.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:       sync.RWMutex{},
		sessions: make(map[string]*memorySession),
	}
}

func (s *MemoryStore) session(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &memorySession{plan: nil, days: nil, history: nil}
		s.sessions[id] = sess
	}
	return sess
}

func (s *MemoryStore) CurrentPlan(_ context.Context, sessionID string) (fitnessplan.FitnessPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.plan == nil {
		return fitnessplan.FitnessPlan{}, ErrNoPlan
	}
	return *sess.plan, nil
}

func (s *MemoryStore) SetPlan(
	_ context.Context,
	sessionID string,
	plan fitnessplan.FitnessPlan,
	days []schedule.ScheduledTrainingDay,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(sessionID)
	if sess.plan != nil {
		sess.history = append(sess.history, *sess.plan)
	}
	sess.plan = &plan
	sess.days = slices.Clone(days)
	return nil
}

func (s *MemoryStore) Schedule(_ context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.plan == nil {
		return nil, ErrNoPlan
	}
	if sess.days == nil {
		return nil, ErrNoSchedule
	}
	return slices.Clone(sess.days), nil
}

func (s *MemoryStore) SetSchedule(_ context.Context, sessionID string, days []schedule.ScheduledTrainingDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.plan == nil {
		return ErrNoPlan
	}
	sess.days = slices.Clone(days)
	if sess.days == nil {
		sess.days = []schedule.ScheduledTrainingDay{}
	}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.plan == nil {
		return nil
	}
	sess.history = append(sess.history, *sess.plan)
	sess.plan = nil
	sess.days = nil
	return nil
}

func (s *MemoryStore) History(_ context.Context, sessionID string) ([]fitnessplan.FitnessPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return slices.Clone(sess.history), nil
}
