// ABOUTME: Exercise model for the reference catalog.
// ABOUTME: Built-in exercises are seeded at bootstrap; custom ones are user-defined.
package models

import (
	"fmt"
	"strings"
)

// Exercise is a catalog entry referenced by workouts and templates.
type Exercise struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	MuscleGroup  string `json:"muscle_group" yaml:"muscle_group"`
	Equipment    string `json:"equipment" yaml:"equipment"`
	Instructions string `json:"instructions" yaml:"instructions"`
	IsCustom     bool   `json:"is_custom" yaml:"is_custom"`
}

// NewCustomExercise creates a user-defined exercise. The ID is assigned on insert.
func NewCustomExercise(name, muscleGroup, equipment string) *Exercise {
	return &Exercise{
		Name:        strings.TrimSpace(name),
		MuscleGroup: muscleGroup,
		Equipment:   equipment,
		IsCustom:    true,
	}
}

// WithInstructions sets the how-to text.
func (e *Exercise) WithInstructions(instructions string) *Exercise {
	e.Instructions = instructions
	return e
}

// Validate checks the fields the schema declares NOT NULL.
func (e *Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("exercise name is required")
	}
	if strings.TrimSpace(e.MuscleGroup) == "" {
		return fmt.Errorf("muscle group is required for %q", e.Name)
	}
	if strings.TrimSpace(e.Equipment) == "" {
		return fmt.Errorf("equipment is required for %q", e.Name)
	}
	return nil
}
