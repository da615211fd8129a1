// ABOUTME: MCP server setup for the fitspire workout store.
// ABOUTME: Registers workout tools and resources over a storage Repository.
package mcp

import (
	"context"

	"github.com/harperreed/fitspire/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to clients in the initialize handshake.
const Version = "0.3.0"

const instructions = `fitspire is a local strength training log.

Look up exercise names with list_exercises before calling log_workout; names
match the catalog ignoring case. Sets are weight x reps in the order they
were performed. Send the same session_token again to correct a workout
instead of creating a second one. Dates without a zone are local time.
Months in workout_history are UTC calendar months.`

// Server exposes a Repository as MCP tools and resources.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
}

// NewServer builds the MCP server for repo. Nothing is served until Serve.
func NewServer(repo storage.Repository) (*Server, error) {
	s := &Server{
		mcpServer: mcp.NewServer(
			&mcp.Implementation{Name: "fitspire", Title: "fitspire workout log", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		repo: repo,
	}

	s.registerTools()
	s.registerResources()
	return s, nil
}

// Serve runs the server on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
