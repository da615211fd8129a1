// ABOUTME: Tests for the Exercise model.
// ABOUTME: Verifies custom exercise construction and validation.
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomExercise(t *testing.T) {
	e := NewCustomExercise(" Zercher Squat ", "Legs", "Barbell").WithInstructions("Bar in elbows.")

	assert.Equal(t, "Zercher Squat", e.Name)
	assert.True(t, e.IsCustom)
	assert.Equal(t, "Bar in elbows.", e.Instructions)
	assert.NoError(t, e.Validate())
}

func TestExerciseValidate(t *testing.T) {
	assert.Error(t, NewCustomExercise("", "Legs", "Barbell").Validate())
	assert.Error(t, NewCustomExercise("Squat", "", "Barbell").Validate())
	assert.Error(t, NewCustomExercise("Squat", "Legs", " ").Validate())
}

func TestTemplateToWorkoutInput(t *testing.T) {
	tpl := Template{Name: "Push", Exercises: []TemplateExercise{
		{Order: 1, Exercise: Exercise{ID: 4}},
		{Order: 2, Exercise: Exercise{ID: 9}},
	}}
	assert.Equal(t, []int64{4, 9}, tpl.ExerciseIDs())

	in := tpl.ToWorkoutInput(&WorkoutInput{Name: "Push"})
	assert.Len(t, in.Exercises, 2)
	assert.Equal(t, int64(9), in.Exercises[1].ExerciseID)
	assert.Empty(t, in.Exercises[1].Sets)
}
