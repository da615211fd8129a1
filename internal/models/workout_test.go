// ABOUTME: Tests for the workout aggregate models.
// ABOUTME: Covers input validation, builders, totals and exercise reordering.
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkoutInput(t *testing.T) {
	date := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)
	in := NewWorkoutInput("  Leg Day ", date)
	in.AddExercise(1).AddSet(100, 5).AddSet(105, 5)
	in.AddExercise(2)

	assert.Equal(t, "Leg Day", in.Name)
	assert.Equal(t, date, in.Date)
	require.Len(t, in.Exercises, 2)
	assert.Len(t, in.Exercises[0].Sets, 2)
	assert.Empty(t, in.Exercises[1].Sets)
	assert.NoError(t, in.Validate())
}

func TestWorkoutInputValidate(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func() *WorkoutInput
	}{
		{"empty name", func() *WorkoutInput { return NewWorkoutInput(" ", date) }},
		{"zero date", func() *WorkoutInput { return NewWorkoutInput("Push", time.Time{}) }},
		{"five digit year", func() *WorkoutInput {
			return NewWorkoutInput("Push", time.Date(20240, 3, 5, 0, 0, 0, 0, time.UTC))
		}},
		{"year zero", func() *WorkoutInput {
			return NewWorkoutInput("Push", time.Date(0, 12, 31, 0, 0, 0, 0, time.UTC))
		}},
		{"bad exercise id", func() *WorkoutInput {
			in := NewWorkoutInput("Push", date)
			in.AddExercise(0)
			return in
		}},
		{"negative weight", func() *WorkoutInput {
			in := NewWorkoutInput("Push", date)
			in.AddExercise(1).AddSet(-1, 5)
			return in
		}},
		{"negative reps", func() *WorkoutInput {
			in := NewWorkoutInput("Push", date)
			in.AddExercise(1).AddSet(20, -5)
			return in
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.build().Validate())
		})
	}
}

func TestWorkoutTotals(t *testing.T) {
	w := Workout{
		Exercises: []WorkoutExercise{
			{Sets: []Set{{Weight: 100, Reps: 5}, {Weight: 100, Reps: 3}}},
			{Sets: []Set{}},
			{Sets: []Set{{Weight: 0, Reps: 12}}},
		},
	}
	assert.Equal(t, 3, w.TotalSets())
	assert.InDelta(t, 800.0, w.Volume(), 0.001)
}

func TestWorkoutFindSet(t *testing.T) {
	w := Workout{
		Exercises: []WorkoutExercise{
			{Sets: []Set{{ID: 10, Reps: 5}}},
			{Sets: []Set{{ID: 11, Reps: 8}}},
		},
	}
	s := w.FindSet(11)
	require.NotNil(t, s)
	s.Reps = 9
	assert.Equal(t, 9, w.Exercises[1].Sets[0].Reps)
	assert.Nil(t, w.FindSet(99))
}

func TestWorkoutMoveExercise(t *testing.T) {
	newWorkout := func() Workout {
		return Workout{ID: 1, Exercises: []WorkoutExercise{
			{ID: 10, Order: 1}, {ID: 20, Order: 2}, {ID: 30, Order: 3},
		}}
	}
	ids := func(w Workout) []int64 {
		var out []int64
		for _, ex := range w.Exercises {
			out = append(out, ex.ID)
		}
		return out
	}

	w := newWorkout()
	require.NoError(t, w.MoveExercise(30, 1))
	assert.Equal(t, []int64{30, 10, 20}, ids(w))
	for i, ex := range w.Exercises {
		assert.Equal(t, i+1, ex.Order)
	}

	w = newWorkout()
	require.NoError(t, w.MoveExercise(10, 3))
	assert.Equal(t, []int64{20, 30, 10}, ids(w))

	w = newWorkout()
	assert.Error(t, w.MoveExercise(99, 1))
	assert.Error(t, w.MoveExercise(10, 0))
	assert.Error(t, w.MoveExercise(10, 4))
}
