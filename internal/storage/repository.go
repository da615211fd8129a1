// ABOUTME: Repository interface for workout data storage.
// ABOUTME: Defines the contract the CLI and MCP server depend on.
package storage

import (
	"context"

	"github.com/harperreed/fitspire/internal/models"
)

// Repository defines the storage interface for workout data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Exercise catalog
	ListAllExercises(ctx context.Context) ([]models.Exercise, error)
	ListExercisesForTemplate(ctx context.Context, templateID int64) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
	FindExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	CreateCustomExercise(ctx context.Context, e *models.Exercise) error
	DeleteCustomExercise(ctx context.Context, id int64) error

	// Workout writes
	SaveWorkout(ctx context.Context, in models.WorkoutInput) (int64, error)
	UpdateWorkout(ctx context.Context, w models.Workout) error
	DeleteWorkout(ctx context.Context, id int64) error

	// Workout reads
	GetWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error)
	GetWorkoutHistory(ctx context.Context, month, year int) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id int64) (*models.Workout, error)
	ListWorkouts(ctx context.Context, limit int) ([]models.WorkoutSummary, error)

	// Templates
	SaveTemplate(ctx context.Context, name string, exerciseIDs []int64) (int64, error)
	GetTemplate(ctx context.Context, id int64) (*models.Template, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	DeleteTemplate(ctx context.Context, id int64) error

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportYAML(ctx context.Context) ([]byte, error)
	ExportMarkdown(ctx context.Context, month, year int) (string, error)
	ImportJSON(ctx context.Context, data []byte) error

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
