// ABOUTME: Tests for export and import.
// ABOUTME: Verifies JSON round trips between databases, idempotent import and the YAML/Markdown renderings.
package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/fitspire/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seedExportData(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	custom := models.NewCustomExercise("Sled Push", "Legs", "Sled").WithInstructions("Drive low.")
	require.NoError(t, db.CreateCustomExercise(ctx, custom))

	in := workoutWithSets(t, db, "Leg Day", marchFifth).WithSessionToken("tok-1")
	in.AddExercise(custom.ID).AddSet(90, 20)
	_, err := db.SaveWorkout(ctx, *in)
	require.NoError(t, err)

	_, err = db.SaveWorkout(ctx, *models.NewWorkoutInput("Rest", marchFifth.AddDate(0, 0, 1)).WithSessionToken("tok-2"))
	require.NoError(t, err)

	_, err = db.SaveTemplate(ctx, "Legs", []int64{exerciseID(t, db, "Leg Press"), custom.ID})
	require.NoError(t, err)
}

func TestGetAllData(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	data, err := db.GetAllData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ExportVersion, data.Version)
	assert.Equal(t, "fitspire", data.Tool)
	require.Len(t, data.Exercises, 1)
	assert.Equal(t, "Sled Push", data.Exercises[0].Name)

	require.Len(t, data.Workouts, 2)
	assert.Equal(t, "Rest", data.Workouts[0].Name)
	legs := data.Workouts[1]
	assert.Equal(t, "tok-1", legs.SessionToken)
	require.Len(t, legs.Exercises, 3)
	assert.Equal(t, "Barbell Back Squat", legs.Exercises[0].Exercise)
	assert.Len(t, legs.Exercises[0].Sets, 3)
	assert.Empty(t, legs.Exercises[1].Sets)

	require.Len(t, data.Templates, 1)
	assert.Equal(t, []string{"Leg Press", "Sled Push"}, data.Templates[0].Exercises)
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seedExportData(t, src)

	raw, err := src.ExportJSON(ctx)
	require.NoError(t, err)

	dst := setupTestDB(t)
	require.NoError(t, dst.ImportJSON(ctx, raw))

	want, err := src.GetAllData(ctx)
	require.NoError(t, err)
	got, err := dst.GetAllData(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Exercises, got.Exercises)
	assert.Equal(t, want.Workouts, got.Workouts)
	assert.Equal(t, want.Templates, got.Templates)
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	seedExportData(t, src)

	raw, err := src.ExportJSON(ctx)
	require.NoError(t, err)

	dst := setupTestDB(t)
	require.NoError(t, dst.ImportJSON(ctx, raw))
	require.NoError(t, dst.ImportJSON(ctx, raw))

	assert.Equal(t, 2, countRows(t, dst, "workout"))
	assert.Equal(t, 3, countRows(t, dst, "workout_exercise"))
	assert.Equal(t, 4, countRows(t, dst, "sets"))
	assert.Equal(t, 1, countRows(t, dst, "workout_templates"))
	assert.Equal(t, countRows(t, src, "exercise"), countRows(t, dst, "exercise"))
}

func TestImportUnknownExercise(t *testing.T) {
	db := setupTestDB(t)

	err := db.ImportData(context.Background(), &ExportData{
		Workouts: []ExportWorkout{{
			Name:      "Mystery",
			Date:      marchFifth,
			Exercises: []ExportWorkoutItem{{Exercise: "Nope"}},
		}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, countRows(t, db, "workout"))
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	assert.Error(t, db.ImportJSON(context.Background(), []byte("{not json")))
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	out, err := db.ExportYAML(context.Background())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "fitspire", doc["tool"])

	text := string(out)
	assert.Contains(t, text, "session_token: tok-1")
	assert.Contains(t, text, "- 100x5")
	assert.Contains(t, text, "2024-03-05T18:30:00Z")
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedExportData(t, db)

	md, err := db.ExportMarkdown(context.Background(), 3, 2024)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Workout History - March 2024"))
	assert.Contains(t, md, "## Leg Day - 2024-03-05 18:30")
	assert.Contains(t, md, "### 1. Barbell Back Squat")
	assert.Contains(t, md, "| 2 | 110 | 3 |")
	assert.Contains(t, md, "_No sets recorded._")
	assert.Contains(t, md, "_No exercises recorded._")

	empty, err := db.ExportMarkdown(context.Background(), 1, 2020)
	require.NoError(t, err)
	assert.Contains(t, empty, "No workouts recorded.")
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "100", formatWeight(100))
	assert.Equal(t, "112.5", formatWeight(112.5))
	assert.Equal(t, "0", formatWeight(0))
	assert.Equal(t, "22.75", formatWeight(22.75))
}
