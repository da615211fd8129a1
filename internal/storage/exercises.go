// ABOUTME: Exercise catalog reads and custom exercise management.
// ABOUTME: Built-in rows come from the seed; users may add and remove custom rows.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitspire/internal/models"
)

const exerciseColumns = `e.exercise_id, e.exercise_name, e.muscle_group, e.equipment, e.instructions, e.is_custom`

// ListAllExercises returns the whole catalog in insertion order.
func (d *DB) ListAllExercises(ctx context.Context) ([]models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercise e ORDER BY e.exercise_id`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &QueryError{Op: "list exercises", Err: err}
	}
	defer func() { _ = rows.Close() }()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, &QueryError{Op: "list exercises", Err: err}
	}
	return exercises, nil
}

// ListExercisesForTemplate returns a template's exercises in template order.
// An unknown or empty template yields an empty slice.
func (d *DB) ListExercisesForTemplate(ctx context.Context, templateID int64) ([]models.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM template_exercise te
		JOIN exercise e ON e.exercise_id = te.exercise_id
		WHERE te.template_id = ?
		ORDER BY te.order_in_template
	`
	rows, err := d.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, &QueryError{Op: "list template exercises", Err: err}
	}
	defer func() { _ = rows.Close() }()

	exercises, err := scanExercises(rows)
	if err != nil {
		return nil, &QueryError{Op: "list template exercises", Err: err}
	}
	return exercises, nil
}

// GetExercise retrieves a catalog entry by ID.
func (d *DB) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercise e WHERE e.exercise_id = ?`
	e, err := scanExercise(d.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, &QueryError{Op: "get exercise", Err: err}
	}
	return e, nil
}

// FindExerciseByName looks up a catalog entry by name, ignoring case.
func (d *DB) FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	name = strings.TrimSpace(name)
	query := `SELECT ` + exerciseColumns + ` FROM exercise e WHERE e.exercise_name = ? COLLATE NOCASE`
	e, err := scanExercise(d.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, &QueryError{Op: "find exercise", Err: err}
	}
	return e, nil
}

// CreateCustomExercise inserts a user-defined exercise and sets its ID.
// A name already in the catalog is a constraint violation.
func (d *DB) CreateCustomExercise(ctx context.Context, e *models.Exercise) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("create exercise: %w", invalid("%v", err))
	}
	e.IsCustom = true

	res, err := d.db.ExecContext(ctx, `
		INSERT INTO exercise (exercise_name, muscle_group, equipment, instructions, is_custom)
		VALUES (?, ?, ?, ?, 1)
	`, strings.TrimSpace(e.Name), e.MuscleGroup, e.Equipment, e.Instructions)
	if err != nil {
		return fmt.Errorf("create exercise %q: %w", e.Name, classify(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create exercise %q: %w", e.Name, err)
	}
	e.ID = id
	d.logger.Debug("created custom exercise", "id", id, "name", e.Name)
	return nil
}

// DeleteCustomExercise removes a custom exercise. Workout and template rows
// that reference it cascade away. Built-in exercises cannot be deleted.
func (d *DB) DeleteCustomExercise(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM exercise WHERE exercise_id = ? AND is_custom = 1`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete exercise: custom exercise %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var isCustom int
	if err := row.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.Equipment, &e.Instructions, &isCustom); err != nil {
		return nil, err
	}
	e.IsCustom = isCustom != 0
	return &e, nil
}

func scanExercises(rows *sql.Rows) ([]models.Exercise, error) {
	exercises := []models.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
