// ABOUTME: CLI commands for workout templates.
// ABOUTME: Supports create, list, show and delete subcommands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage workout templates",
	Long: `A template is a named, ordered list of exercises without sets. Start a
workout from one with 'fitspire workout log <name> --template <id>'.`,
}

var templateCreateCmd = &cobra.Command{
	Use:   "create <name> <exercise>...",
	Short: "Create a template",
	Long: `Create a template. Exercises are catalog names or IDs, in order.

Examples:
  fitspire template create Push "Bench Press" "Overhead Press" Dip
  fitspire template create Legs 1 4 6`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ids := make([]int64, 0, len(args)-1)
		for _, ref := range args[1:] {
			e, err := resolveExercise(ctx, ref)
			if err != nil {
				return err
			}
			ids = append(ids, e.ID)
		}

		id, err := repo.SaveTemplate(ctx, args[0], ids)
		if err != nil {
			return fmt.Errorf("failed to create template: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Created template %s\n", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %d\n", id)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := repo.ListTemplates(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(templates) == 0 {
			fmt.Fprintln(out, "No templates found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, t := range templates {
			names := make([]string, 0, len(t.Exercises))
			for _, te := range t.Exercises {
				names = append(names, te.Exercise.Name)
			}
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(t.ID), 4)),
				padRight(t.Name, 16),
				truncate(strings.Join(names, ", "), 60))
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := repo.GetTemplate(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Template: %s\n", t.Name)
		if len(t.Exercises) == 0 {
			fmt.Fprintln(out, "  no exercises")
		}
		for _, te := range t.Exercises {
			fmt.Fprintf(out, "  %d. %s (%s, %s)\n", te.Order, te.Exercise.Name, te.Exercise.MuscleGroup, te.Exercise.Equipment)
		}
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteTemplate(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Deleted template %d\n", id)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateCreateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}
