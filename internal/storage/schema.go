// ABOUTME: SQLite schema definition and transactional bootstrap.
// ABOUTME: Defines exercise, workout, workout_exercise, sets, workout_templates and template_exercise.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type schemaStep struct {
	name string
	sql  string
}

var schemaSteps = []schemaStep{
	{"create exercise", `
	CREATE TABLE IF NOT EXISTS exercise (
		exercise_id INTEGER PRIMARY KEY AUTOINCREMENT,
		exercise_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		muscle_group TEXT NOT NULL,
		equipment TEXT NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		is_custom INTEGER NOT NULL DEFAULT 0
	)`},
	{"create workout", `
	CREATE TABLE IF NOT EXISTS workout (
		workout_id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_name TEXT NOT NULL,
		date TEXT NOT NULL,
		session_token TEXT UNIQUE,
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`},
	{"create workout_exercise", `
	CREATE TABLE IF NOT EXISTS workout_exercise (
		workout_exercise_id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		order_in_workout INTEGER NOT NULL,
		FOREIGN KEY (workout_id) REFERENCES workout(workout_id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercise(exercise_id) ON DELETE CASCADE
	)`},
	{"create sets", `
	CREATE TABLE IF NOT EXISTS sets (
		set_id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_exercise_id INTEGER NOT NULL,
		set_number INTEGER NOT NULL,
		weight DECIMAL(5,2) NOT NULL,
		reps INTEGER NOT NULL,
		FOREIGN KEY (workout_exercise_id) REFERENCES workout_exercise(workout_exercise_id) ON DELETE CASCADE
	)`},
	{"create workout_templates", `
	CREATE TABLE IF NOT EXISTS workout_templates (
		template_id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_name TEXT NOT NULL UNIQUE
	)`},
	{"create template_exercise", `
	CREATE TABLE IF NOT EXISTS template_exercise (
		template_exercise_id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		order_in_template INTEGER NOT NULL,
		FOREIGN KEY (template_id) REFERENCES workout_templates(template_id) ON DELETE CASCADE,
		FOREIGN KEY (exercise_id) REFERENCES exercise(exercise_id) ON DELETE CASCADE
	)`},
	{"create indexes", `
	CREATE INDEX IF NOT EXISTS idx_workout_date ON workout(date DESC);
	CREATE INDEX IF NOT EXISTS idx_workout_name_date ON workout(workout_name, date);
	CREATE INDEX IF NOT EXISTS idx_workout_exercise_workout ON workout_exercise(workout_id, order_in_workout);
	CREATE INDEX IF NOT EXISTS idx_sets_workout_exercise ON sets(workout_exercise_id, set_number);
	CREATE INDEX IF NOT EXISTS idx_template_exercise_template ON template_exercise(template_id, order_in_template);
	`},
}

// Initialize creates any missing tables and seeds the exercise catalog when
// it holds no built-in exercise. It runs in one transaction and is safe to
// call on every start.
func (d *DB) Initialize(ctx context.Context) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, step := range schemaSteps {
			if _, err := tx.ExecContext(ctx, step.sql); err != nil {
				return &SchemaError{Step: step.name, Err: err}
			}
		}
		return d.seedCatalog(ctx, tx)
	})
	if err != nil {
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			err = &SchemaError{Step: "bootstrap", Err: err}
		}
		d.logger.Error("schema bootstrap failed", "err", err)
		return err
	}
	d.logger.Debug("schema ready", "path", d.dbPath)
	return nil
}

func (d *DB) seedCatalog(ctx context.Context, tx *sql.Tx) error {
	var builtIn int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercise WHERE is_custom = 0`).Scan(&builtIn); err != nil {
		return &SchemaError{Step: "count catalog", Err: err}
	}
	if builtIn > 0 {
		return nil
	}

	seed, err := LoadSeedCatalog()
	if err != nil {
		return &SchemaError{Step: "load seed catalog", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO exercise (exercise_name, muscle_group, equipment, instructions, is_custom)
		VALUES (?, ?, ?, ?, 0)
	`)
	if err != nil {
		return &SchemaError{Step: "prepare seed", Err: err}
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, e := range seed {
		res, err := stmt.ExecContext(ctx, e.Name, e.MuscleGroup, e.Equipment, e.Instructions)
		if err != nil {
			return &SchemaError{Step: fmt.Sprintf("seed %q", e.Name), Err: err}
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	d.logger.Info("seeded exercise catalog", "exercises", inserted)
	return nil
}
