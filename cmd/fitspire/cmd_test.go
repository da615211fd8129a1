// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs the root command end to end against a temp database.
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/harperreed/fitspire/internal/models"
	"github.com/harperreed/fitspire/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// in package variables between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cli struct {
	t      *testing.T
	dbPath string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FITSPIRE_DB", "")
	t.Setenv("FITSPIRE_DATA_DIR", "")
	return &cli{t: t, dbPath: filepath.Join(t.TempDir(), "fitspire.db")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--db", c.dbPath))
	err := Execute()
	return buf.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

// open gives direct access to the database the CLI wrote.
func (c *cli) open() *storage.DB {
	c.t.Helper()
	db, err := storage.Open(c.dbPath)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestParseTime(t *testing.T) {
	valid := []string{"2025-01-31 08:30", "2025-01-31T08:30", "2025-01-31", "2025-01-31T08:30:00Z", "2025-01-31T08:30:00+05:00"}
	for _, s := range valid {
		got, err := parseTime(s)
		assert.NoError(t, err, s)
		assert.False(t, got.IsZero(), s)
	}

	for _, s := range []string{"31-01-2025", "not a date", ""} {
		_, err := parseTime(s)
		assert.Error(t, err, s)
	}
}

func TestParseWeightReps(t *testing.T) {
	set, err := parseWeightReps("62.5x8")
	require.NoError(t, err)
	assert.Equal(t, models.SetInput{Weight: 62.5, Reps: 8}, set)

	set, err = parseWeightReps(" 100X5 ")
	require.NoError(t, err)
	assert.Equal(t, models.SetInput{Weight: 100, Reps: 5}, set)

	for _, bad := range []string{"100", "x5", "100x", "ax5", "1x2x3"} {
		_, err := parseWeightReps(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseSetSpec(t *testing.T) {
	name, sets, err := parseSetSpec("Barbell Back Squat:100x5,110x3")
	require.NoError(t, err)
	assert.Equal(t, "Barbell Back Squat", name)
	assert.Len(t, sets, 2)

	name, sets, err = parseSetSpec("Leg Press")
	require.NoError(t, err)
	assert.Equal(t, "Leg Press", name)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)

	_, _, err = parseSetSpec(":100x5")
	assert.Error(t, err)
	_, _, err = parseSetSpec("Squat:heavy")
	assert.Error(t, err)
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "this is...", truncate("this is a long string", 10))
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))

	long := "Überkopfdrücken mit Kurzhantel"
	got := truncate(long, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Überkop...", got)
	assert.Equal(t, "Übung ", padRight("Übung", 6))
}

func TestParseTimeIsLocal(t *testing.T) {
	got, err := parseTime("2024-03-05")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)))

	got, err = parseTime("2024-03-05T18:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)))
}

func TestExecuteClosesRepositoryOnError(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("workout", "show", "42")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, repo)

	c.mustRun("exercise", "list")
	assert.Nil(t, repo)
}

func TestFormatSets(t *testing.T) {
	assert.Equal(t, "-", formatSets(nil))
	assert.Equal(t, "100x5, 112.5x3", formatSets([]models.Set{{Weight: 100, Reps: 5}, {Weight: 112.5, Reps: 3}}))
}

func TestWorkoutLogAndShow(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("workout", "log", "Leg Day",
		"--date", "2024-03-05 18:30",
		"--set", "Barbell Back Squat:100x5,110x3,120x1",
		"--set", "leg press")
	assert.Contains(t, out, "Logged Leg Day")

	list := c.mustRun("workout", "list")
	assert.Contains(t, list, "Leg Day")
	assert.Contains(t, list, "2 exercises, 3 sets")

	show := c.mustRun("workout", "show", "1")
	assert.Contains(t, show, "1. Barbell Back Squat")
	assert.Contains(t, show, "110x3")
	assert.Contains(t, show, "2. Leg Press")
}

func TestWorkoutLogWithTokenIsIdempotent(t *testing.T) {
	c := newCLI(t)

	for i := 0; i < 2; i++ {
		c.mustRun("workout", "log", "Pull", "--token", "abc", "--set", "Pull-Up:0x10,0x8")
	}

	list, err := c.open().ListWorkouts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "abc", list[0].SessionToken)
	assert.Equal(t, 2, list[0].SetCount)
}

func TestWorkoutLogUnknownExercise(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("workout", "log", "Bad", "--set", "Moon Squat:1x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown exercise")
}

func TestWorkoutEditSetMoveDelete(t *testing.T) {
	c := newCLI(t)
	c.mustRun("workout", "log", "Push", "--date", "2024-03-05",
		"--set", "Bench Press:60x10,80x5", "--set", "Dip:0x12")

	db := c.open()
	ctx := context.Background()
	w, err := db.GetWorkout(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c.mustRun("workout", "edit", "1", "--name", "Push A")
	c.mustRun("workout", "set", "1", itoa(w.Exercises[0].Sets[1].ID), "82.5x4")
	c.mustRun("workout", "move", "1", itoa(w.Exercises[1].ID), "1")

	got, err := c.open().GetWorkout(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Push A", got.Name)
	assert.Equal(t, "Dip", got.Exercises[0].Exercise.Name)
	assert.Equal(t, 82.5, got.Exercises[1].Sets[1].Weight)
	assert.Equal(t, 4, got.Exercises[1].Sets[1].Reps)
	assert.True(t, got.Date.Equal(w.Date), "edit without --date keeps the date")

	c.mustRun("workout", "delete", "1")
	_, err = c.run("workout", "show", "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWorkoutHistory(t *testing.T) {
	c := newCLI(t)
	c.mustRun("workout", "log", "March", "--date", "2024-03-10T12:00:00Z", "--set", "Deadlift:140x5")
	c.mustRun("workout", "log", "April", "--date", "2024-04-10T12:00:00Z")

	out := c.mustRun("workout", "history", "--month", "3", "--year", "2024")
	assert.Contains(t, out, "March")
	assert.Contains(t, out, "140x5")
	assert.NotContains(t, out, "April")

	empty := c.mustRun("workout", "history", "--month", "1", "--year", "2020")
	assert.Contains(t, empty, "No workouts in January")

	_, err := c.run("workout", "history", "--month", "13")
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestExerciseCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("exercise", "add", "Sled Push", "--muscle", "Legs", "--equipment", "Sled")
	assert.Contains(t, out, "Added Sled Push")

	list := c.mustRun("exercise", "list", "--muscle", "legs")
	assert.Contains(t, list, "Sled Push")
	assert.NotContains(t, list, "Bench Press")

	_, err := c.run("exercise", "add", "Bench Press", "--muscle", "Chest", "--equipment", "Barbell")
	assert.ErrorIs(t, err, storage.ErrConstraintViolation)

	_, err = c.run("exercise", "add", "No Flags")
	assert.Error(t, err)

	e, err := c.open().FindExerciseByName(context.Background(), "Sled Push")
	require.NoError(t, err)
	c.mustRun("exercise", "delete", itoa(e.ID))
	assert.NotContains(t, c.mustRun("exercise", "list"), "Sled Push")
}

func TestTemplateCommands(t *testing.T) {
	c := newCLI(t)

	c.mustRun("template", "create", "Push", "Bench Press", "Overhead Press", "Dip")
	c.mustRun("template", "create", "Empty")

	list := c.mustRun("template", "list")
	assert.Contains(t, list, "Bench Press, Overhead Press, Dip")
	assert.Contains(t, list, "Empty")

	show := c.mustRun("template", "show", "1")
	assert.Contains(t, show, "2. Overhead Press")

	c.mustRun("workout", "log", "Push A", "--template", "1", "--set", "Lateral Raise:10x15")
	exercises, err := c.open().GetWorkoutExercises(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, exercises, 4)
	assert.Equal(t, "Lateral Raise", exercises[3].Exercise.Name)

	c.mustRun("template", "delete", "2")
	_, err = c.run("template", "show", "2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExportImport(t *testing.T) {
	src := newCLI(t)
	src.mustRun("workout", "log", "Leg Day", "--date", "2024-03-05T18:30:00Z", "--set", "Barbell Back Squat:100x5")

	backup := filepath.Join(t.TempDir(), "backup.json")
	src.mustRun("export", "json", "-o", backup)

	dst := &cli{t: t, dbPath: filepath.Join(t.TempDir(), "other.db")}
	dst.mustRun("import", backup)
	dst.mustRun("import", backup)

	list, err := dst.open().ListWorkouts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].SetCount)

	md := src.mustRun("export", "markdown", "--month", "3", "--year", "2024")
	assert.Contains(t, md, "# Workout History - March 2024")

	yml := src.mustRun("export", "yaml")
	assert.Contains(t, yml, "- 100x5")

	_, err = src.run("export", "csv")
	assert.Error(t, err)
}

func TestDBFlagCreatesFile(t *testing.T) {
	c := newCLI(t)
	c.mustRun("exercise", "list")

	_, err := os.Stat(c.dbPath)
	assert.NoError(t, err)
}

func TestCommandFlags(t *testing.T) {
	for _, tt := range []struct {
		cmd  *cobra.Command
		flag string
	}{
		{workoutLogCmd, "set"},
		{workoutLogCmd, "token"},
		{workoutLogCmd, "template"},
		{workoutListCmd, "limit"},
		{workoutHistoryCmd, "month"},
		{exportCmd, "output"},
		{mcpCmd, "metrics-addr"},
	} {
		assert.NotNil(t, tt.cmd.Flags().Lookup(tt.flag), "%s --%s", tt.cmd.Name(), tt.flag)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestNewLogger(t *testing.T) {
	l := newLogger("error")
	assert.Equal(t, "error", l.GetLevel().String())

	l = newLogger("bogus")
	assert.Equal(t, "warn", l.GetLevel().String())
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
