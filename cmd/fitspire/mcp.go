// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio MCP server and optionally serves prometheus metrics over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/fitspire/internal/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var metricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and record your workouts through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "fitspire": {
        "command": "fitspire",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises       List the exercise catalog
  template_exercises   List a template's exercises
  log_workout          Record a workout with exercises and sets
  get_workout          Get a workout with its sets
  list_workouts        List recent workouts
  workout_history      Get a month of workouts
  update_set           Change one set's weight and reps
  delete_workout       Delete a workout

AVAILABLE RESOURCES:

  fitspire://catalog          Exercise catalog
  fitspire://history/current  This month's workouts
  fitspire://recent           Recent workouts and templates

METRICS:

  --metrics-addr :9464 serves prometheus counters at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		if metricsAddr != "" {
			stop := serveMetrics(ctx, metricsAddr)
			defer stop()
		}

		return server.Serve(ctx)
	},
}

// serveMetrics exposes the default prometheus registry until the returned
// function is called.
func serveMetrics(ctx context.Context, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

func init() {
	mcpCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. :9464)")
	rootCmd.AddCommand(mcpCmd)
}
