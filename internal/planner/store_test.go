package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan/plantest"
	"github.com/sdeery14/fitness-app-sub000/internal/planner"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
	"github.com/sdeery14/fitness-app-sub000/internal/sqlite"
	"github.com/sdeery14/fitness-app-sub000/internal/testhelpers"
)

func newSQLiteStore(t *testing.T) planner.Store {
	t.Helper()
	return newSQLiteStoreAt(t, ":memory:")
}

func newSQLiteStoreAt(t *testing.T, url string) planner.Store {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	logger := testhelpers.NewTestLogger(t)
	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		if err = db.Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
	return planner.NewSQLiteStore(db, logger)
}

func newMemoryStore(t *testing.T) planner.Store {
	t.Helper()
	return planner.NewMemoryStore()
}

func planNamed(name string) fitnessplan.FitnessPlan {
	plan := plantest.Plan("2024-01-01", "2024-01-14",
		plantest.Period("Base", "2024-01-01", plantest.WeekSplit("PPL")))
	plan.Name = name
	return plan
}

func buildDays(t *testing.T, plan fitnessplan.FitnessPlan) []schedule.ScheduledTrainingDay {
	t.Helper()
	result, err := schedule.Build(plan, schedule.Options{})
	if err != nil {
		t.Fatalf("Failed to build schedule: %v", err)
	}
	return result.Days
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) planner.Store{
		"memory": newMemoryStore,
		"sqlite": newSQLiteStore,
	}
	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			testStore(t, newStore(t))
		})
	}
}

func testStore(t *testing.T, store planner.Store) {
	t.Helper()
	ctx := t.Context()
	opts := cmpopts.EquateEmpty()
	first, second := planNamed("First"), planNamed("Second")
	days := buildDays(t, first)

	t.Run("empty session", func(t *testing.T) {
		if _, err := store.CurrentPlan(ctx, "empty"); !errors.Is(err, planner.ErrNoPlan) {
			t.Errorf("CurrentPlan() error = %v, want ErrNoPlan", err)
		}
		if _, err := store.Schedule(ctx, "empty"); !errors.Is(err, planner.ErrNoPlan) {
			t.Errorf("Schedule() error = %v, want ErrNoPlan", err)
		}
		if err := store.SetSchedule(ctx, "empty", days); !errors.Is(err, planner.ErrNoPlan) {
			t.Errorf("SetSchedule() error = %v, want ErrNoPlan", err)
		}
		if err := store.Clear(ctx, "empty"); err != nil {
			t.Errorf("Clear() error = %v", err)
		}
		history, err := store.History(ctx, "empty")
		if err != nil || len(history) != 0 {
			t.Errorf("History() = %v, %v", history, err)
		}
	})

	t.Run("plan without schedule", func(t *testing.T) {
		if err := store.SetPlan(ctx, "s1", first, nil); err != nil {
			t.Fatalf("Failed to set plan: %v", err)
		}
		got, err := store.CurrentPlan(ctx, "s1")
		if err != nil {
			t.Fatalf("Failed to get plan: %v", err)
		}
		if diff := cmp.Diff(first, got, opts); diff != "" {
			t.Errorf("CurrentPlan() mismatch (-want +got):\n%s", diff)
		}
		if _, err = store.Schedule(ctx, "s1"); !errors.Is(err, planner.ErrNoSchedule) {
			t.Errorf("Schedule() error = %v, want ErrNoSchedule", err)
		}
		if err = store.SetSchedule(ctx, "s1", days); err != nil {
			t.Fatalf("Failed to set schedule: %v", err)
		}
		gotDays, err := store.Schedule(ctx, "s1")
		if err != nil {
			t.Fatalf("Failed to get schedule: %v", err)
		}
		if diff := cmp.Diff(days, gotDays, opts); diff != "" {
			t.Errorf("Schedule() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("replacing pushes history and schedule", func(t *testing.T) {
		secondDays := days[:3]
		if err := store.SetPlan(ctx, "s1", second, secondDays); err != nil {
			t.Fatalf("Failed to set plan: %v", err)
		}
		gotDays, err := store.Schedule(ctx, "s1")
		if err != nil {
			t.Fatalf("Failed to get schedule: %v", err)
		}
		if len(gotDays) != 3 {
			t.Errorf("expected the replaced schedule of 3 days, got %d", len(gotDays))
		}
		history, err := store.History(ctx, "s1")
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		if len(history) != 1 || history[0].Name != "First" {
			t.Errorf("unexpected history: %v", history)
		}
	})

	t.Run("empty schedule is not missing", func(t *testing.T) {
		if err := store.SetPlan(ctx, "s2", first, []schedule.ScheduledTrainingDay{}); err != nil {
			t.Fatalf("Failed to set plan: %v", err)
		}
		gotDays, err := store.Schedule(ctx, "s2")
		if err != nil || len(gotDays) != 0 {
			t.Errorf("Schedule() = %v, %v", gotDays, err)
		}
	})

	t.Run("clear keeps the cleared plan in history", func(t *testing.T) {
		if err := store.Clear(ctx, "s1"); err != nil {
			t.Fatalf("Failed to clear: %v", err)
		}
		if _, err := store.CurrentPlan(ctx, "s1"); !errors.Is(err, planner.ErrNoPlan) {
			t.Errorf("CurrentPlan() error = %v, want ErrNoPlan", err)
		}
		if _, err := store.Schedule(ctx, "s1"); !errors.Is(err, planner.ErrNoPlan) {
			t.Errorf("Schedule() error = %v, want ErrNoPlan", err)
		}
		history, err := store.History(ctx, "s1")
		if err != nil {
			t.Fatalf("Failed to get history: %v", err)
		}
		names := make([]string, 0, len(history))
		for _, p := range history {
			names = append(names, p.Name)
		}
		if diff := cmp.Diff([]string{"First", "Second"}, names); diff != "" {
			t.Errorf("History() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		if _, err := store.CurrentPlan(ctx, "s2"); err != nil {
			t.Errorf("CurrentPlan(s2) error = %v", err)
		}
		history, err := store.History(ctx, "s2")
		if err != nil || len(history) != 0 {
			t.Errorf("History(s2) = %v, %v", history, err)
		}
	})
}
