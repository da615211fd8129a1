// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports list, add (custom exercises) and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitspire/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseMuscle       string
	exerciseEquipment    string
	exerciseInstructions string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse and extend the exercise catalog",
	Long: `The catalog ships with built-in exercises. Custom exercises can be added
and removed; removing one also removes it from every workout and template.

COMMANDS:

  list     List the catalog
  add      Add a custom exercise
  delete   Delete a custom exercise`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := repo.ListAllExercises(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		shown := 0
		for _, e := range exercises {
			if exerciseMuscle != "" && !strings.EqualFold(e.MuscleGroup, exerciseMuscle) {
				continue
			}
			custom := ""
			if e.IsCustom {
				custom = color.CyanString("custom")
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(e.ID), 4)),
				padRight(truncate(e.Name, 28), 28),
				padRight(e.MuscleGroup, 10),
				padRight(e.Equipment, 11),
				custom)
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No exercises found.")
		}
		return nil
	},
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom exercise",
	Long: `Add a custom exercise to the catalog.

Examples:
  fitspire exercise add "Zercher Squat" --muscle Legs --equipment Barbell
  fitspire exercise add "Sled Push" --muscle Legs --equipment Sled --instructions "Drive low."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := models.NewCustomExercise(args[0], exerciseMuscle, exerciseEquipment).
			WithInstructions(exerciseInstructions)

		if err := repo.CreateCustomExercise(cmd.Context(), e); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Added %s\n", e.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %d\n", e.ID)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteCustomExercise(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted exercise %d\n", id)
		return nil
	},
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "filter by muscle group")

	exerciseAddCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "muscle group (required)")
	exerciseAddCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "equipment (required)")
	exerciseAddCmd.Flags().StringVar(&exerciseInstructions, "instructions", "", "how to perform it")
	_ = exerciseAddCmd.MarkFlagRequired("muscle")
	_ = exerciseAddCmd.MarkFlagRequired("equipment")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
