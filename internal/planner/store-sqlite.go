package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sdeery14/fitness-app-sub000/internal/errors"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
	"github.com/sdeery14/fitness-app-sub000/internal/sqlite"
)

// SQLiteStore keeps sessions in the plan_sessions and plan_history tables as JSON documents.
type SQLiteStore struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewSQLiteStore(db *sqlite.Database, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) CurrentPlan(ctx context.Context, sessionID string) (fitnessplan.FitnessPlan, error) {
	var planJSON string
	err := s.db.ReadOnly.QueryRowContext(ctx,
		"SELECT plan_json FROM plan_sessions WHERE session_id = ?", sessionID).Scan(&planJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fitnessplan.FitnessPlan{}, ErrNoPlan
		}
		return fitnessplan.FitnessPlan{}, fmt.Errorf("query plan: %w", err)
	}
	var plan fitnessplan.FitnessPlan
	if err = json.Unmarshal([]byte(planJSON), &plan); err != nil {
		return fitnessplan.FitnessPlan{}, fmt.Errorf("unmarshal plan: %w", err)
	}
	return plan, nil
}

func (s *SQLiteStore) SetPlan(
	ctx context.Context,
	sessionID string,
	plan fitnessplan.FitnessPlan,
	days []schedule.ScheduledTrainingDay,
) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	scheduleJSON, err := marshalSchedule(days)
	if err != nil {
		return err
	}

	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err = archiveCurrentPlan(ctx, tx, sessionID); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO plan_sessions (session_id, plan_json, schedule_json)
			VALUES (?, ?, ?)
			ON CONFLICT (session_id) DO UPDATE SET
				plan_json     = excluded.plan_json,
				schedule_json = excluded.schedule_json,
				updated_at    = STRFTIME('%Y-%m-%dT%H:%M:%fZ')`,
			sessionID, string(planJSON), scheduleJSON); err != nil {
			return fmt.Errorf("upsert plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug, "stored plan",
		slog.String("session_id", sessionID), slog.Int("schedule_days", len(days)))
	return nil
}

func (s *SQLiteStore) Schedule(ctx context.Context, sessionID string) ([]schedule.ScheduledTrainingDay, error) {
	var scheduleJSON sql.NullString
	err := s.db.ReadOnly.QueryRowContext(ctx,
		"SELECT schedule_json FROM plan_sessions WHERE session_id = ?", sessionID).Scan(&scheduleJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	if !scheduleJSON.Valid {
		return nil, ErrNoSchedule
	}
	days := []schedule.ScheduledTrainingDay{}
	if err = json.Unmarshal([]byte(scheduleJSON.String), &days); err != nil {
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}
	return days, nil
}

func (s *SQLiteStore) SetSchedule(ctx context.Context, sessionID string, days []schedule.ScheduledTrainingDay) error {
	if days == nil {
		days = []schedule.ScheduledTrainingDay{}
	}
	scheduleJSON, err := marshalSchedule(days)
	if err != nil {
		return err
	}
	result, err := s.db.ReadWrite.ExecContext(ctx, `
		UPDATE plan_sessions
		SET schedule_json = ?, updated_at = STRFTIME('%Y-%m-%dT%H:%M:%fZ')
		WHERE session_id = ?`, scheduleJSON, sessionID)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoPlan
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) error {
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := archiveCurrentPlan(ctx, tx, sessionID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM plan_sessions WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("delete plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(ctx context.Context, sessionID string) (_ []fitnessplan.FitnessPlan, err error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx,
		"SELECT plan_json FROM plan_history WHERE session_id = ? ORDER BY id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var plans []fitnessplan.FitnessPlan
	for rows.Next() {
		var planJSON string
		if err = rows.Scan(&planJSON); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var plan fitnessplan.FitnessPlan
		if err = json.Unmarshal([]byte(planJSON), &plan); err != nil {
			return nil, fmt.Errorf("unmarshal history plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return plans, nil
}

func archiveCurrentPlan(ctx context.Context, tx *sql.Tx, sessionID string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO plan_history (session_id, plan_json)
		SELECT session_id, plan_json FROM plan_sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("archive plan: %w", err)
	}
	return nil
}

// marshalSchedule encodes days. A nil schedule is stored as NULL.
func marshalSchedule(days []schedule.ScheduledTrainingDay) (sql.NullString, error) {
	if days == nil {
		return sql.NullString{String: "", Valid: false}, nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal schedule: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
