// ABOUTME: Workout aggregate reads and flat-row-to-tree reconstruction.
// ABOUTME: One ordered pass folds joined rows into workouts, exercises and sets.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harperreed/fitspire/internal/models"
	"github.com/harperreed/fitspire/internal/observability"
)

const aggregateColumns = `
	w.workout_id, w.workout_name, w.date, w.session_token,
	we.workout_exercise_id, we.order_in_workout,
	e.exercise_id, e.exercise_name, e.muscle_group, e.equipment, e.instructions, e.is_custom,
	s.set_id, s.set_number, s.weight, s.reps`

const aggregateOrder = `
	ORDER BY w.date DESC, w.workout_id DESC, we.order_in_workout ASC, s.set_number ASC`

// aggregateQuery outer-joins every level so workouts without exercises and
// exercises without sets still produce a row.
const aggregateQuery = `
	SELECT` + aggregateColumns + `
	FROM workout w
	LEFT JOIN workout_exercise we ON we.workout_id = w.workout_id
	LEFT JOIN exercise e ON e.exercise_id = we.exercise_id
	LEFT JOIN sets s ON s.workout_exercise_id = we.workout_exercise_id`

// GetWorkoutHistory returns the workouts dated in the given UTC month, most
// recent first, each with its exercises and sets.
func (d *DB) GetWorkoutHistory(ctx context.Context, month, year int) ([]models.Workout, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("workout history: %w", invalid("month %d out of range 1..12", month))
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("workout history: %w", invalid("year %d out of range", year))
	}

	query := aggregateQuery + `
	WHERE strftime('%Y', w.date) = ? AND strftime('%m', w.date) = ?` + aggregateOrder

	workouts, rows, err := d.queryAggregates(ctx, "workout history", query,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		observability.RecordError("workout_history")
		return nil, err
	}

	observability.RecordHistoryQuery(rows)
	return workouts, nil
}

// GetWorkout returns one full workout aggregate.
func (d *DB) GetWorkout(ctx context.Context, id int64) (*models.Workout, error) {
	query := aggregateQuery + `
	WHERE w.workout_id = ?` + aggregateOrder

	workouts, _, err := d.queryAggregates(ctx, "get workout", query, id)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("workout %d: %w", id, ErrNotFound)
	}
	return &workouts[0], nil
}

// GetWorkoutExercises returns a workout's exercises in workout order, each
// with its catalog entry and its sets in set order. An unknown workout
// yields an empty slice.
func (d *DB) GetWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error) {
	query := `
	SELECT` + aggregateColumns + `
	FROM workout w
	JOIN workout_exercise we ON we.workout_id = w.workout_id
	JOIN exercise e ON e.exercise_id = we.exercise_id
	LEFT JOIN sets s ON s.workout_exercise_id = we.workout_exercise_id
	WHERE w.workout_id = ?` + aggregateOrder

	workouts, _, err := d.queryAggregates(ctx, "get workout exercises", query, workoutID)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return []models.WorkoutExercise{}, nil
	}
	return workouts[0].Exercises, nil
}

// allWorkouts returns every workout aggregate, most recent first.
func (d *DB) allWorkouts(ctx context.Context) ([]models.Workout, error) {
	workouts, _, err := d.queryAggregates(ctx, "list all workouts", aggregateQuery+aggregateOrder)
	return workouts, err
}

// queryAggregates runs an aggregate query and folds its rows. Any failure
// discards whatever was already built.
func (d *DB) queryAggregates(ctx context.Context, op, query string, args ...any) ([]models.Workout, int, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, &QueryError{Op: op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	b := newWorkoutBuilder()
	for rows.Next() {
		var r aggregateRow
		if err := rows.Scan(
			&r.workoutID, &r.workoutName, &r.date, &r.sessionToken,
			&r.workoutExerciseID, &r.order,
			&r.exerciseID, &r.exerciseName, &r.muscleGroup, &r.equipment, &r.instructions, &r.isCustom,
			&r.setID, &r.setNumber, &r.weight, &r.reps,
		); err != nil {
			return nil, 0, &QueryError{Op: op, Err: fmt.Errorf("scan row: %w", err)}
		}
		if err := b.add(r); err != nil {
			return nil, 0, &QueryError{Op: op, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, &QueryError{Op: op, Err: err}
	}

	d.logger.Debug("reconstructed workouts", "op", op, "rows", b.rows, "workouts", len(b.order))
	return b.build(), b.rows, nil
}

// aggregateRow is one flattened join row. Every column past the workout
// may be NULL because of the outer joins.
type aggregateRow struct {
	workoutID    sql.NullInt64
	workoutName  sql.NullString
	date         sql.NullString
	sessionToken sql.NullString

	workoutExerciseID sql.NullInt64
	order             sql.NullInt64

	exerciseID   sql.NullInt64
	exerciseName sql.NullString
	muscleGroup  sql.NullString
	equipment    sql.NullString
	instructions sql.NullString
	isCustom     sql.NullInt64

	setID     sql.NullInt64
	setNumber sql.NullInt64
	weight    sql.NullFloat64
	reps      sql.NullInt64
}

type workoutNode struct {
	workout   models.Workout
	exercises []*exerciseNode
}

type exerciseNode struct {
	exercise models.WorkoutExercise
	sets     []models.Set
}

// workoutBuilder folds rows ordered by workout then exercise then set.
// Each node is created once, on the first row that mentions it; later rows
// only append children. Insertion order is the row order, so the output
// follows the query's ORDER BY and never the row ids.
type workoutBuilder struct {
	order     []*workoutNode
	workouts  map[int64]*workoutNode
	exercises map[int64]*exerciseNode
	seenSets  map[int64]struct{}
	rows      int
}

func newWorkoutBuilder() *workoutBuilder {
	return &workoutBuilder{
		workouts:  make(map[int64]*workoutNode),
		exercises: make(map[int64]*exerciseNode),
		seenSets:  make(map[int64]struct{}),
	}
}

func (b *workoutBuilder) add(r aggregateRow) error {
	b.rows++
	if !r.workoutID.Valid {
		return nil
	}

	wn, ok := b.workouts[r.workoutID.Int64]
	if !ok {
		date, err := parseDate(r.date.String)
		if err != nil {
			return err
		}
		wn = &workoutNode{workout: models.Workout{
			ID:           r.workoutID.Int64,
			SessionToken: r.sessionToken.String,
			Name:         r.workoutName.String,
			Date:         date,
		}}
		b.workouts[r.workoutID.Int64] = wn
		b.order = append(b.order, wn)
	}

	if !r.workoutExerciseID.Valid || !r.exerciseID.Valid {
		return nil
	}

	en, ok := b.exercises[r.workoutExerciseID.Int64]
	if !ok {
		en = &exerciseNode{exercise: models.WorkoutExercise{
			ID:        r.workoutExerciseID.Int64,
			WorkoutID: r.workoutID.Int64,
			Order:     int(r.order.Int64),
			Exercise: models.Exercise{
				ID:           r.exerciseID.Int64,
				Name:         r.exerciseName.String,
				MuscleGroup:  r.muscleGroup.String,
				Equipment:    r.equipment.String,
				Instructions: r.instructions.String,
				IsCustom:     r.isCustom.Int64 != 0,
			},
		}}
		b.exercises[r.workoutExerciseID.Int64] = en
		wn.exercises = append(wn.exercises, en)
	}

	if !r.setID.Valid {
		return nil
	}
	if _, dup := b.seenSets[r.setID.Int64]; dup {
		return nil
	}
	b.seenSets[r.setID.Int64] = struct{}{}
	en.sets = append(en.sets, models.Set{
		ID:                r.setID.Int64,
		WorkoutExerciseID: r.workoutExerciseID.Int64,
		SetNumber:         int(r.setNumber.Int64),
		Weight:            r.weight.Float64,
		Reps:              int(r.reps.Int64),
	})
	return nil
}

// build materializes the tree. Empty child lists are empty slices, not nil.
func (b *workoutBuilder) build() []models.Workout {
	workouts := make([]models.Workout, 0, len(b.order))
	for _, wn := range b.order {
		w := wn.workout
		w.Exercises = make([]models.WorkoutExercise, 0, len(wn.exercises))
		for _, en := range wn.exercises {
			ex := en.exercise
			ex.Sets = make([]models.Set, 0, len(en.sets))
			ex.Sets = append(ex.Sets, en.sets...)
			w.Exercises = append(w.Exercises, ex)
		}
		workouts = append(workouts, w)
	}
	return workouts
}
