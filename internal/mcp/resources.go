// ABOUTME: MCP resource implementations for workout data.
// ABOUTME: Provides fitspire://catalog, fitspire://history/current and fitspire://recent.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fitspire://catalog - the whole exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitspire://catalog",
		Name:        "Exercise Catalog",
		Description: "Built-in and custom exercises",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// fitspire://history/current - this month's workouts with sets
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitspire://history/current",
		Name:        "This Month's Workouts",
		Description: "Every workout of the current UTC month with exercises and sets",
		MIMEType:    "application/json",
	}, s.handleCurrentHistoryResource)

	// fitspire://recent - last 10 workouts plus templates
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitspire://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 workouts and the saved templates",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.repo.ListAllExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return jsonResource("fitspire://catalog", map[string]any{"exercises": exercises})
}

func (s *Server) handleCurrentHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now().UTC()
	workouts, err := s.repo.GetWorkoutHistory(ctx, int(now.Month()), now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to get workout history: %w", err)
	}

	return jsonResource("fitspire://history/current", map[string]any{
		"month":    int(now.Month()),
		"year":     now.Year(),
		"workouts": workouts,
	})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.ListWorkouts(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return jsonResource("fitspire://recent", map[string]any{
		"workouts":  workouts,
		"templates": templates,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
