// ABOUTME: CLI commands for recording and editing workouts.
// ABOUTME: Supports log, list, show, history, edit, set, move and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fitspire/internal/models"
	"github.com/spf13/cobra"
)

var (
	workoutDate     string
	workoutToken    string
	workoutSets     []string
	workoutTemplate int64
	workoutLimit    int
	workoutName     string
	historyMonth    int
	historyYear     int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Record and review workouts",
	Long: `Record strength workouts and review their history.

A workout has an ordered list of exercises; each exercise has an ordered list
of sets written as <weight>x<reps>.

WORKFLOW:

  1. Log a workout:     fitspire workout log "Leg Day" --set "Barbell Back Squat:100x5,110x3"
  2. Review it:         fitspire workout show 1
  3. Fix a set:         fitspire workout set 1 3 112.5x3
  4. Browse a month:    fitspire workout history --month 3

COMMANDS:

  log       Record a workout
  list      List recent workouts
  show      Show a workout with its sets
  history   Show every workout of a month
  edit      Rename or re-date a workout
  set       Change one set's weight and reps
  move      Move an exercise to another position
  delete    Delete a workout`,
}

var workoutLogCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Record a workout",
	Long: `Record a workout. Each --set names an exercise (catalog name or ID)
followed by its sets; exercises are stored in flag order.

Logging again with the same --token replaces that workout. Without a token,
a workout with the same name and date is replaced.

Examples:
  fitspire workout log "Leg Day" --set "Barbell Back Squat:100x5,110x3,120x1" --set "Leg Press"
  fitspire workout log "Push A" --template 2 --date "2024-03-05 18:30"
  fitspire workout log Pull --token 7f0c --set "Pull-Up:0x10,0x8"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		date := time.Now()
		if workoutDate != "" {
			t, err := parseTime(workoutDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", workoutDate)
			}
			date = t
		}

		in := models.NewWorkoutInput(args[0], date).WithSessionToken(workoutToken)

		if workoutTemplate > 0 {
			tpl, err := repo.GetTemplate(ctx, workoutTemplate)
			if err != nil {
				return fmt.Errorf("failed to load template: %w", err)
			}
			tpl.ToWorkoutInput(in)
		}

		for _, spec := range workoutSets {
			name, sets, err := parseSetSpec(spec)
			if err != nil {
				return err
			}
			e, err := resolveExercise(ctx, name)
			if err != nil {
				return err
			}
			ex := in.AddExercise(e.ID)
			ex.Sets = append(ex.Sets, sets...)
		}

		id, err := repo.SaveWorkout(ctx, *in)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", in.Name)
		fmt.Fprintf(out, "  ID: %d\n", id)
		fmt.Fprintf(out, "  Exercises: %d\n", len(in.Exercises))
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts(cmd.Context(), workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Fprintf(out, "%s %s %s %d exercises, %d sets\n",
				faint.Sprint(padRight(strconv.FormatInt(w.ID, 10), 4)),
				faint.Sprint(w.Date.Local().Format("2006-01-02 15:04")),
				padRight(truncate(w.Name, 24), 24),
				w.ExerciseCount, w.SetCount)
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkout(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		printWorkout(cmd, w)
		return nil
	},
}

var workoutHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show every workout of a month",
	Long: `Show every workout of a month with exercises and sets, most recent first.
Months are calendar months in UTC and default to the current one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now().UTC()
		month, year := historyMonth, historyYear
		if month == 0 {
			month = int(now.Month())
		}
		if year == 0 {
			year = now.Year()
		}

		workouts, err := repo.GetWorkoutHistory(cmd.Context(), month, year)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintf(out, "No workouts in %s.\n", time.Month(month))
			return nil
		}
		for i := range workouts {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printWorkout(cmd, &workouts[i])
		}
		return nil
	},
}

var workoutEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Rename or re-date a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkout(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		if workoutName != "" {
			w.Name = workoutName
		}
		if workoutDate != "" {
			t, err := parseTime(workoutDate)
			if err != nil {
				return fmt.Errorf("invalid date: %s", workoutDate)
			}
			w.Date = t
		}

		if err := repo.UpdateWorkout(ctx, *w); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated workout %d\n", id)
		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <workout-id> <set-id> <weight>x<reps>",
	Short: "Change one set's weight and reps",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		setID, err := parseID(args[1])
		if err != nil {
			return err
		}
		values, err := parseWeightReps(args[2])
		if err != nil {
			return err
		}

		w, err := repo.GetWorkout(ctx, workoutID)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}
		set := w.FindSet(setID)
		if set == nil {
			return fmt.Errorf("set %d is not part of workout %d", setID, workoutID)
		}
		set.Weight = values.Weight
		set.Reps = values.Reps

		if err := repo.UpdateWorkout(ctx, *w); err != nil {
			return fmt.Errorf("failed to update set: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Set %d is now %sx%d\n",
			setID, formatWeight(values.Weight), values.Reps)
		return nil
	},
}

var workoutMoveCmd = &cobra.Command{
	Use:   "move <workout-id> <workout-exercise-id> <position>",
	Short: "Move an exercise to another position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		workoutID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exerciseID, err := parseID(args[1])
		if err != nil {
			return err
		}
		position, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[2])
		}

		w, err := repo.GetWorkout(ctx, workoutID)
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}
		if err := w.MoveExercise(exerciseID, position); err != nil {
			return err
		}

		if err := repo.UpdateWorkout(ctx, *w); err != nil {
			return fmt.Errorf("failed to reorder workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Moved exercise %d to position %d\n", exerciseID, position)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a workout",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteWorkout(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted workout %d\n", id)
		return nil
	},
}

func printWorkout(cmd *cobra.Command, w *models.Workout) {
	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	bold.Fprintf(out, "%s", w.Name)
	faint.Fprintf(out, "  #%d  %s\n", w.ID, w.Date.Local().Format("2006-01-02 15:04"))

	if len(w.Exercises) == 0 {
		faint.Fprintln(out, "  no exercises")
		return
	}
	for _, ex := range w.Exercises {
		fmt.Fprintf(out, "  %d. %s %s\n", ex.Order, padRight(ex.Exercise.Name, 24), faint.Sprintf("[%d]", ex.ID))
		for _, s := range ex.Sets {
			fmt.Fprintf(out, "       %s %sx%d\n", faint.Sprintf("set %d [%d]", s.SetNumber, s.ID), formatWeight(s.Weight), s.Reps)
		}
	}
	faint.Fprintf(out, "  %d sets, volume %s\n", w.TotalSets(), formatWeight(w.Volume()))
}

func init() {
	workoutLogCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "when it happened (YYYY-MM-DD [HH:MM], default now)")
	workoutLogCmd.Flags().StringVar(&workoutToken, "token", "", "session token for idempotent re-logging")
	workoutLogCmd.Flags().StringArrayVarP(&workoutSets, "set", "s", nil, `exercise and sets, e.g. "Bench Press:60x10,80x5" (repeatable)`)
	workoutLogCmd.Flags().Int64VarP(&workoutTemplate, "template", "t", 0, "start from a template's exercises")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutHistoryCmd.Flags().IntVar(&historyMonth, "month", 0, "month 1-12 (default current)")
	workoutHistoryCmd.Flags().IntVar(&historyYear, "year", 0, "year (default current)")

	workoutEditCmd.Flags().StringVar(&workoutName, "name", "", "new name")
	workoutEditCmd.Flags().StringVarP(&workoutDate, "date", "d", "", "new date (YYYY-MM-DD [HH:MM])")

	workoutCmd.AddCommand(workoutLogCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutHistoryCmd)
	workoutCmd.AddCommand(workoutEditCmd)
	workoutCmd.AddCommand(workoutSetCmd)
	workoutCmd.AddCommand(workoutMoveCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
