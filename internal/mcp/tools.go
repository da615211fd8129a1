// ABOUTME: MCP tool implementations for workouts and the exercise catalog.
// ABOUTME: Logging, reading, editing and deleting workouts through the Repository.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitspire/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List the exercise catalog, optionally filtered by muscle group",
	}, s.handleListExercises)

	// template_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "template_exercises",
		Description: "List the exercises of a workout template in template order",
	}, s.handleTemplateExercises)

	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a workout with its exercises and sets. Re-sending the same session_token replaces that workout",
	}, s.handleLogWorkout)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises and sets",
	}, s.handleGetWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	// workout_history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "workout_history",
		Description: "Get every workout of a month (UTC) with exercises and sets, most recent first",
	}, s.handleWorkoutHistory)

	// update_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Change the weight and reps of one recorded set",
	}, s.handleUpdateSet)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and all its exercises and sets",
	}, s.handleDeleteWorkout)
}

// Tool input/output types

type listExercisesInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (Legs, Back, Chest, ...)"`
}

type exercisesOutput struct {
	Exercises []models.Exercise `json:"exercises"`
}

type templateExercisesInput struct {
	TemplateID int64 `json:"template_id" jsonschema:"Template ID"`
}

type setInput struct {
	Weight float64 `json:"weight" jsonschema:"Weight lifted"`
	Reps   int     `json:"reps" jsonschema:"Repetitions"`
}

type exerciseEntry struct {
	Exercise   string     `json:"exercise,omitempty" jsonschema:"Exercise name from the catalog"`
	ExerciseID int64      `json:"exercise_id,omitempty" jsonschema:"Exercise ID, used when exercise is empty"`
	Sets       []setInput `json:"sets,omitempty" jsonschema:"Sets in the order performed"`
}

type logWorkoutInput struct {
	Name         string          `json:"name" jsonschema:"Workout name"`
	Date         string          `json:"date,omitempty" jsonschema:"Timestamp (ISO 8601), defaults to now"`
	SessionToken string          `json:"session_token,omitempty" jsonschema:"Stable session identity for idempotent re-sends"`
	Exercises    []exerciseEntry `json:"exercises,omitempty" jsonschema:"Exercises in the order performed"`
}

type logWorkoutOutput struct {
	WorkoutID int64  `json:"workout_id"`
	Message   string `json:"message"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutsOutput struct {
	Workouts []models.WorkoutSummary `json:"workouts"`
}

type workoutHistoryInput struct {
	Month int `json:"month,omitempty" jsonschema:"Month 1-12, defaults to the current month"`
	Year  int `json:"year,omitempty" jsonschema:"Year, defaults to the current year"`
}

type historyOutput struct {
	Month    int              `json:"month"`
	Year     int              `json:"year"`
	Workouts []models.Workout `json:"workouts"`
}

type updateSetInput struct {
	WorkoutID int64   `json:"workout_id" jsonschema:"Workout ID"`
	SetID     int64   `json:"set_id" jsonschema:"Set ID"`
	Weight    float64 `json:"weight" jsonschema:"New weight"`
	Reps      int     `json:"reps" jsonschema:"New repetitions"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	exercises, err := s.repo.ListAllExercises(ctx)
	if err != nil {
		return nil, exercisesOutput{}, fmt.Errorf("failed to list exercises: %w", err)
	}

	if input.MuscleGroup != "" {
		filtered := []models.Exercise{}
		for _, e := range exercises {
			if strings.EqualFold(e.MuscleGroup, input.MuscleGroup) {
				filtered = append(filtered, e)
			}
		}
		exercises = filtered
	}

	return nil, exercisesOutput{Exercises: exercises}, nil
}

func (s *Server) handleTemplateExercises(ctx context.Context, req *mcp.CallToolRequest, input templateExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	exercises, err := s.repo.ListExercisesForTemplate(ctx, input.TemplateID)
	if err != nil {
		return nil, exercisesOutput{}, fmt.Errorf("failed to list template exercises: %w", err)
	}
	return nil, exercisesOutput{Exercises: exercises}, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, logWorkoutOutput, error) {
	date := time.Now()
	if input.Date != "" {
		t, err := parseTimestamp(input.Date)
		if err != nil {
			return nil, logWorkoutOutput{}, err
		}
		date = t
	}

	in := models.NewWorkoutInput(input.Name, date).WithSessionToken(input.SessionToken)
	for _, entry := range input.Exercises {
		id := entry.ExerciseID
		if entry.Exercise != "" {
			e, err := s.repo.FindExerciseByName(ctx, entry.Exercise)
			if err != nil {
				return nil, logWorkoutOutput{}, fmt.Errorf("unknown exercise %q: %w", entry.Exercise, err)
			}
			id = e.ID
		}
		ex := in.AddExercise(id)
		for _, set := range entry.Sets {
			ex.AddSet(set.Weight, set.Reps)
		}
	}

	id, err := s.repo.SaveWorkout(ctx, *in)
	if err != nil {
		return nil, logWorkoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, logWorkoutOutput{
		WorkoutID: id,
		Message:   fmt.Sprintf("Logged %s with %d exercises (ID: %d)", in.Name, len(in.Exercises), id),
	}, nil
}

// Handlers whose output carries timestamps return any so no output schema
// is inferred for time.Time.

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, any, error) {
	w, err := s.repo.GetWorkout(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout: %w", err)
	}
	return nil, w, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.ListWorkouts(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return nil, workoutsOutput{Workouts: workouts}, nil
}

func (s *Server) handleWorkoutHistory(ctx context.Context, req *mcp.CallToolRequest, input workoutHistoryInput) (*mcp.CallToolResult, any, error) {
	now := time.Now().UTC()
	if input.Month == 0 {
		input.Month = int(now.Month())
	}
	if input.Year == 0 {
		input.Year = now.Year()
	}

	workouts, err := s.repo.GetWorkoutHistory(ctx, input.Month, input.Year)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get workout history: %w", err)
	}
	return nil, historyOutput{Month: input.Month, Year: input.Year, Workouts: workouts}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.repo.GetWorkout(ctx, input.WorkoutID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to get workout: %w", err)
	}

	set := w.FindSet(input.SetID)
	if set == nil {
		return nil, simpleOutput{}, fmt.Errorf("set %d is not part of workout %d", input.SetID, input.WorkoutID)
	}
	set.Weight = input.Weight
	set.Reps = input.Reps

	if err := s.repo.UpdateWorkout(ctx, *w); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update set: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Updated set %d: %gx%d", input.SetID, input.Weight, input.Reps),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

// parseTimestamp reads timestamps without a zone as local time, like the CLI.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use ISO 8601", s)
}
