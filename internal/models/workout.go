// ABOUTME: Workout aggregate models: Workout, WorkoutExercise and Set.
// ABOUTME: Also holds WorkoutInput, the write-side shape consumed by SaveWorkout.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Workout is one recorded training session together with its ordered exercises.
type Workout struct {
	ID           int64             `json:"id" yaml:"id"`
	SessionToken string            `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Name         string            `json:"name" yaml:"name"`
	Date         time.Time         `json:"date" yaml:"date"`
	Exercises    []WorkoutExercise `json:"exercises" yaml:"exercises"`
}

// WorkoutExercise is an exercise performed within a workout.
// Order is 1-based and defines display order.
type WorkoutExercise struct {
	ID        int64    `json:"id" yaml:"id"`
	WorkoutID int64    `json:"workout_id" yaml:"workout_id"`
	Order     int      `json:"order" yaml:"order"`
	Exercise  Exercise `json:"exercise" yaml:"exercise"`
	Sets      []Set    `json:"sets" yaml:"sets"`
}

// Set is a single weight/reps entry. SetNumber is 1-based.
type Set struct {
	ID                int64   `json:"id" yaml:"id"`
	WorkoutExerciseID int64   `json:"workout_exercise_id" yaml:"workout_exercise_id"`
	SetNumber         int     `json:"set_number" yaml:"set_number"`
	Weight            float64 `json:"weight" yaml:"weight"`
	Reps              int     `json:"reps" yaml:"reps"`
}

// WorkoutSummary is the flat list view of a workout.
type WorkoutSummary struct {
	ID            int64     `json:"id" yaml:"id"`
	SessionToken  string    `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Name          string    `json:"name" yaml:"name"`
	Date          time.Time `json:"date" yaml:"date"`
	ExerciseCount int       `json:"exercise_count" yaml:"exercise_count"`
	SetCount      int       `json:"set_count" yaml:"set_count"`
}

// TotalSets counts the sets across all exercises.
func (w *Workout) TotalSets() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Volume is the sum of weight*reps across every set.
func (w *Workout) Volume() float64 {
	var v float64
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			v += s.Weight * float64(s.Reps)
		}
	}
	return v
}

// FindSet returns a pointer to the set with the given ID, or nil.
func (w *Workout) FindSet(setID int64) *Set {
	for i := range w.Exercises {
		for j := range w.Exercises[i].Sets {
			if w.Exercises[i].Sets[j].ID == setID {
				return &w.Exercises[i].Sets[j]
			}
		}
	}
	return nil
}

// MoveExercise moves the exercise with the given workout_exercise ID to a
// 1-based position and renumbers Order densely.
func (w *Workout) MoveExercise(workoutExerciseID int64, position int) error {
	from := -1
	for i, ex := range w.Exercises {
		if ex.ID == workoutExerciseID {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("exercise %d is not part of workout %d", workoutExerciseID, w.ID)
	}
	if position < 1 || position > len(w.Exercises) {
		return fmt.Errorf("position %d out of range 1..%d", position, len(w.Exercises))
	}

	moved := w.Exercises[from]
	rest := append(w.Exercises[:from:from], w.Exercises[from+1:]...)
	to := position - 1
	reordered := make([]WorkoutExercise, 0, len(w.Exercises))
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)

	for i := range reordered {
		reordered[i].Order = i + 1
	}
	w.Exercises = reordered
	return nil
}

// WorkoutInput is the write-side description of a workout aggregate.
// Exercise and set order is the slice order.
type WorkoutInput struct {
	// SessionToken identifies the session across saves. When empty the
	// (Name, Date) pair is used to find an existing workout.
	SessionToken string          `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Name         string          `json:"name" yaml:"name"`
	Date         time.Time       `json:"date" yaml:"date"`
	Exercises    []ExerciseInput `json:"exercises" yaml:"exercises"`
}

// ExerciseInput is one exercise of a WorkoutInput.
type ExerciseInput struct {
	ExerciseID int64      `json:"exercise_id" yaml:"exercise_id"`
	Sets       []SetInput `json:"sets" yaml:"sets"`
}

// SetInput is one set of an ExerciseInput.
type SetInput struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Reps   int     `json:"reps" yaml:"reps"`
}

// NewWorkoutInput starts a workout aggregate with the given name and date.
func NewWorkoutInput(name string, date time.Time) *WorkoutInput {
	return &WorkoutInput{
		Name: strings.TrimSpace(name),
		Date: date,
	}
}

// WithSessionToken sets an explicit session identity.
func (in *WorkoutInput) WithSessionToken(token string) *WorkoutInput {
	in.SessionToken = token
	return in
}

// AddExercise appends an exercise and returns it so sets can be chained.
func (in *WorkoutInput) AddExercise(exerciseID int64) *ExerciseInput {
	in.Exercises = append(in.Exercises, ExerciseInput{ExerciseID: exerciseID})
	return &in.Exercises[len(in.Exercises)-1]
}

// AddSet appends a set to the exercise.
func (ex *ExerciseInput) AddSet(weight float64, reps int) *ExerciseInput {
	ex.Sets = append(ex.Sets, SetInput{Weight: weight, Reps: reps})
	return ex
}

// ValidateDate rejects dates that cannot be stored as RFC 3339 text: the
// zero time and any UTC year outside 1..9999.
func ValidateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("workout date is required")
	}
	if y := date.UTC().Year(); y < 1 || y > 9999 {
		return fmt.Errorf("workout date year %d out of range 1..9999", y)
	}
	return nil
}

// Validate checks the aggregate before anything is written.
func (in *WorkoutInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("workout name is required")
	}
	if err := ValidateDate(in.Date); err != nil {
		return err
	}
	for i, ex := range in.Exercises {
		if ex.ExerciseID <= 0 {
			return fmt.Errorf("exercise %d: invalid exercise id %d", i+1, ex.ExerciseID)
		}
		for j, s := range ex.Sets {
			if s.Weight < 0 {
				return fmt.Errorf("exercise %d set %d: weight must not be negative", i+1, j+1)
			}
			if s.Reps < 0 {
				return fmt.Errorf("exercise %d set %d: reps must not be negative", i+1, j+1)
			}
		}
	}
	return nil
}
