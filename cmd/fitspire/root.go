// ABOUTME: Root Cobra command for the fitspire CLI.
// ABOUTME: Loads config and opens the repository in PersistentPreRunE; Execute closes it.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitspire/internal/config"
	"github.com/harperreed/fitspire/internal/storage"
	"github.com/spf13/cobra"
)

var (
	repo    storage.Repository
	logger  *log.Logger
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fitspire",
	Short: "Local strength training log",
	Long: `fitspire records strength workouts in a local SQLite database.

A workout is an ordered list of exercises from the catalog, each with an
ordered list of weight x reps sets.

QUICK START:

  $ fitspire exercise list --muscle legs
  $ fitspire workout log "Leg Day" --set "Barbell Back Squat:100x5,110x3,120x1" --set "Leg Press"
  $ fitspire workout list
  $ fitspire workout history --month 3 --year 2024

TEMPLATES:

  $ fitspire template create Push "Bench Press" "Overhead Press" Dip
  $ fitspire workout log "Push A" --template 1

MCP INTEGRATION:

  Run 'fitspire mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fitspire": { "command": "fitspire", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The database lives at ~/.local/share/fitspire/fitspire.db unless
  --db, FITSPIRE_DB, FITSPIRE_DATA_DIR or ~/.config/fitspire/config.json
  say otherwise. A .env file in the working directory is read at startup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg.GetLogLevel())

		repo, err = cfg.OpenStorage(dbPath, storage.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
}

func newLogger(level string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "fitspire",
		ReportTimestamp: verbose,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

// Execute runs the root command and closes the repository whether or not
// the command succeeded.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeRepo(); err == nil {
		err = cerr
	}
	return err
}

func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default: ~/.local/share/fitspire/fitspire.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}
