// ABOUTME: Workout template storage: named, ordered exercise lists without sets.
// ABOUTME: Templates have their own lifecycle, independent of recorded workouts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/fitspire/internal/models"
)

const templateQuery = `
	SELECT t.template_id, t.template_name,
		te.template_exercise_id, te.order_in_template,
		e.exercise_id, e.exercise_name, e.muscle_group, e.equipment, e.instructions, e.is_custom
	FROM workout_templates t
	LEFT JOIN template_exercise te ON te.template_id = t.template_id
	LEFT JOIN exercise e ON e.exercise_id = te.exercise_id`

// SaveTemplate stores a template whose exercises follow the given order and
// returns its ID. A duplicate name is a constraint violation.
func (d *DB) SaveTemplate(ctx context.Context, name string, exerciseIDs []int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("save template: %w", invalid("template name is required"))
	}
	for _, id := range exerciseIDs {
		if id <= 0 {
			return 0, fmt.Errorf("save template: %w", invalid("invalid exercise id %d", id))
		}
	}

	var templateID int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO workout_templates (template_name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}
		if templateID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert template: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO template_exercise (template_id, exercise_id, order_in_template)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare template exercise insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, id := range exerciseIDs {
			if _, err := stmt.ExecContext(ctx, templateID, id, i+1); err != nil {
				return fmt.Errorf("insert template exercise %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save template %q: %w", name, classify(err))
	}
	return templateID, nil
}

// GetTemplate returns a template with its exercises in template order.
func (d *DB) GetTemplate(ctx context.Context, id int64) (*models.Template, error) {
	templates, err := d.queryTemplates(ctx, "get template",
		templateQuery+` WHERE t.template_id = ? ORDER BY te.order_in_template`, id)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
	}
	return &templates[0], nil
}

// ListTemplates returns every template by name. Templates without
// exercises are included with an empty exercise list.
func (d *DB) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return d.queryTemplates(ctx, "list templates",
		templateQuery+` ORDER BY t.template_name, t.template_id, te.order_in_template`)
}

// DeleteTemplate removes a template and its exercise list.
func (d *DB) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM workout_templates WHERE template_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete template: template %d: %w", id, ErrNotFound)
	}
	return nil
}

func (d *DB) queryTemplates(ctx context.Context, op, query string, args ...any) ([]models.Template, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &QueryError{Op: op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	var order []*models.Template
	byID := make(map[int64]*models.Template)
	for rows.Next() {
		var (
			templateID         int64
			templateName       string
			templateExerciseID sql.NullInt64
			position           sql.NullInt64
			exerciseID         sql.NullInt64
			exerciseName       sql.NullString
			muscleGroup        sql.NullString
			equipment          sql.NullString
			instructions       sql.NullString
			isCustom           sql.NullInt64
		)
		if err := rows.Scan(&templateID, &templateName, &templateExerciseID, &position,
			&exerciseID, &exerciseName, &muscleGroup, &equipment, &instructions, &isCustom); err != nil {
			return nil, &QueryError{Op: op, Err: fmt.Errorf("scan row: %w", err)}
		}

		t, ok := byID[templateID]
		if !ok {
			t = &models.Template{ID: templateID, Name: templateName, Exercises: []models.TemplateExercise{}}
			byID[templateID] = t
			order = append(order, t)
		}
		if !templateExerciseID.Valid || !exerciseID.Valid {
			continue
		}
		t.Exercises = append(t.Exercises, models.TemplateExercise{
			ID:         templateExerciseID.Int64,
			TemplateID: templateID,
			Order:      int(position.Int64),
			Exercise: models.Exercise{
				ID:           exerciseID.Int64,
				Name:         exerciseName.String,
				MuscleGroup:  muscleGroup.String,
				Equipment:    equipment.String,
				Instructions: instructions.String,
				IsCustom:     isCustom.Int64 != 0,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Op: op, Err: err}
	}

	templates := make([]models.Template, 0, len(order))
	for _, t := range order {
		templates = append(templates, *t)
	}
	return templates, nil
}
