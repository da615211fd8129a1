// ABOUTME: Workout template models: a reusable ordered exercise list.
// ABOUTME: Templates have no sets and live independently of recorded workouts.
package models

// Template is a named, ordered list of exercises.
type Template struct {
	ID        int64              `json:"id" yaml:"id"`
	Name      string             `json:"name" yaml:"name"`
	Exercises []TemplateExercise `json:"exercises" yaml:"exercises"`
}

// TemplateExercise is one entry of a template. Order is 1-based.
type TemplateExercise struct {
	ID         int64    `json:"id" yaml:"id"`
	TemplateID int64    `json:"template_id" yaml:"template_id"`
	Order      int      `json:"order" yaml:"order"`
	Exercise   Exercise `json:"exercise" yaml:"exercise"`
}

// ExerciseIDs returns the referenced catalog IDs in template order.
func (t *Template) ExerciseIDs() []int64 {
	ids := make([]int64, 0, len(t.Exercises))
	for _, te := range t.Exercises {
		ids = append(ids, te.Exercise.ID)
	}
	return ids
}

// ToWorkoutInput starts a workout from the template with no sets recorded yet.
func (t *Template) ToWorkoutInput(in *WorkoutInput) *WorkoutInput {
	for _, id := range t.ExerciseIDs() {
		in.AddExercise(id)
	}
	return in
}
