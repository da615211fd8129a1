// ABOUTME: Workout aggregate writes: save, update and cascade delete.
// ABOUTME: Every write runs in one transaction so no partial aggregate is ever visible.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitspire/internal/models"
	"github.com/harperreed/fitspire/internal/observability"
)

// SaveWorkout writes a workout with its exercises and sets and returns the
// workout ID. A workout with the same session token, or with the same name
// and date when no token is given, is reused and its children replaced.
func (d *DB) SaveWorkout(ctx context.Context, in models.WorkoutInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, fmt.Errorf("save workout: %w", invalid("%v", err))
	}

	name := strings.TrimSpace(in.Name)
	date := formatDate(in.Date)

	var workoutID int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		id, found, err := resolveWorkout(ctx, tx, in.SessionToken, name, date)
		if err != nil {
			return err
		}

		if found {
			workoutID = id
			if _, err := tx.ExecContext(ctx,
				`UPDATE workout SET workout_name = ?, date = ? WHERE workout_id = ?`,
				name, date, id,
			); err != nil {
				return fmt.Errorf("update workout: %w", err)
			}
			// Sets cascade with their workout_exercise rows.
			if _, err := tx.ExecContext(ctx, `DELETE FROM workout_exercise WHERE workout_id = ?`, id); err != nil {
				return fmt.Errorf("clear workout exercises: %w", err)
			}
		} else {
			token := in.SessionToken
			if token == "" {
				token = uuid.NewString()
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO workout (workout_name, date, session_token) VALUES (?, ?, ?)`,
				name, date, token,
			)
			if err != nil {
				return fmt.Errorf("insert workout: %w", err)
			}
			if workoutID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("insert workout: %w", err)
			}
		}

		return insertWorkoutChildren(ctx, tx, workoutID, in.Exercises)
	})
	if err != nil {
		observability.RecordError("save_workout")
		return 0, fmt.Errorf("save workout: %w", classify(err))
	}

	observability.RecordWorkoutSaved(time.Now())
	d.logger.Debug("saved workout", "id", workoutID, "name", name, "exercises", len(in.Exercises))
	return workoutID, nil
}

// resolveWorkout finds the workout a save should reuse.
func resolveWorkout(ctx context.Context, tx *sql.Tx, token, name, date string) (int64, bool, error) {
	var (
		id  int64
		err error
	)
	if token != "" {
		err = tx.QueryRowContext(ctx,
			`SELECT workout_id FROM workout WHERE session_token = ?`, token,
		).Scan(&id)
	} else {
		err = tx.QueryRowContext(ctx,
			`SELECT workout_id FROM workout WHERE workout_name = ? AND date = ? ORDER BY workout_id LIMIT 1`,
			name, date,
		).Scan(&id)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve workout: %w", err)
	}
	return id, true, nil
}

func insertWorkoutChildren(ctx context.Context, tx *sql.Tx, workoutID int64, exercises []models.ExerciseInput) error {
	exStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO workout_exercise (workout_id, exercise_id, order_in_workout)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare workout exercise insert: %w", err)
	}
	defer func() { _ = exStmt.Close() }()

	setStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sets (workout_exercise_id, set_number, weight, reps)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare set insert: %w", err)
	}
	defer func() { _ = setStmt.Close() }()

	for i, ex := range exercises {
		res, err := exStmt.ExecContext(ctx, workoutID, ex.ExerciseID, i+1)
		if err != nil {
			return fmt.Errorf("insert exercise %d: %w", ex.ExerciseID, err)
		}
		workoutExerciseID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert exercise %d: %w", ex.ExerciseID, err)
		}

		for j, s := range ex.Sets {
			if _, err := setStmt.ExecContext(ctx, workoutExerciseID, j+1, s.Weight, s.Reps); err != nil {
				return fmt.Errorf("insert set %d of exercise %d: %w", j+1, ex.ExerciseID, err)
			}
		}
	}
	return nil
}

// UpdateWorkout writes back the edits to an already-loaded workout: its name
// and date, the order of its exercises (their position in w.Exercises) and
// the weight and reps of each set. Rows are matched by primary key; if any of
// them no longer exists the whole update is rolled back with ErrLostUpdate.
func (d *DB) UpdateWorkout(ctx context.Context, w models.Workout) error {
	if err := validateWorkoutEdit(w); err != nil {
		return fmt.Errorf("update workout: %w", err)
	}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		if err := expectOne(tx.ExecContext(ctx,
			`UPDATE workout SET workout_name = ?, date = ? WHERE workout_id = ?`,
			strings.TrimSpace(w.Name), formatDate(w.Date), w.ID,
		)); err != nil {
			return fmt.Errorf("workout %d: %w", w.ID, err)
		}

		for i, ex := range w.Exercises {
			if err := expectOne(tx.ExecContext(ctx,
				`UPDATE workout_exercise SET order_in_workout = ? WHERE workout_exercise_id = ? AND workout_id = ?`,
				i+1, ex.ID, w.ID,
			)); err != nil {
				return fmt.Errorf("workout exercise %d: %w", ex.ID, err)
			}

			for _, s := range ex.Sets {
				if err := expectOne(tx.ExecContext(ctx,
					`UPDATE sets SET weight = ?, reps = ? WHERE set_id = ? AND workout_exercise_id = ?`,
					s.Weight, s.Reps, s.ID, ex.ID,
				)); err != nil {
					return fmt.Errorf("set %d: %w", s.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		observability.RecordError("update_workout")
		return fmt.Errorf("update workout: %w", classify(err))
	}

	observability.RecordWorkoutUpdated(time.Now())
	return nil
}

func validateWorkoutEdit(w models.Workout) error {
	if w.ID <= 0 {
		return invalid("workout id is required")
	}
	if strings.TrimSpace(w.Name) == "" {
		return invalid("workout name is required")
	}
	if err := models.ValidateDate(w.Date); err != nil {
		return invalid("%v", err)
	}
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			if s.Weight < 0 || s.Reps < 0 {
				return invalid("set %d: weight and reps must not be negative", s.ID)
			}
		}
	}
	return nil
}

// expectOne turns an UPDATE that matched nothing into ErrLostUpdate.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLostUpdate
	}
	return nil
}

// DeleteWorkout removes a workout; its exercises and sets cascade.
func (d *DB) DeleteWorkout(ctx context.Context, id int64) error {
	var affected int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM workout WHERE workout_id = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		observability.RecordError("delete_workout")
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout: workout %d: %w", id, ErrNotFound)
	}

	observability.RecordWorkoutDeleted(time.Now())
	return nil
}

// ListWorkouts returns workout summaries, most recent first. A limit of zero
// or less returns every workout.
func (d *DB) ListWorkouts(ctx context.Context, limit int) ([]models.WorkoutSummary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT w.workout_id, COALESCE(w.session_token, ''), w.workout_name, w.date,
			COUNT(DISTINCT we.workout_exercise_id), COUNT(s.set_id)
		FROM workout w
		LEFT JOIN workout_exercise we ON we.workout_id = w.workout_id
		LEFT JOIN sets s ON s.workout_exercise_id = we.workout_exercise_id
		GROUP BY w.workout_id
		ORDER BY w.date DESC, w.workout_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, &QueryError{Op: "list workouts", Err: err}
	}
	defer func() { _ = rows.Close() }()

	summaries := []models.WorkoutSummary{}
	for rows.Next() {
		var s models.WorkoutSummary
		var date string
		if err := rows.Scan(&s.ID, &s.SessionToken, &s.Name, &date, &s.ExerciseCount, &s.SetCount); err != nil {
			return nil, &QueryError{Op: "list workouts", Err: err}
		}
		if s.Date, err = parseDate(date); err != nil {
			return nil, &QueryError{Op: "list workouts", Err: err}
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: "list workouts", Err: err}
	}
	return summaries, nil
}

// formatDate normalizes a timestamp to UTC with second precision.
func formatDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.UTC(), nil
}
