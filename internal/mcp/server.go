// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Exposes the fitness service to assistants over stdio.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/fittrack/internal/fitness"
)

// Server wraps the MCP server with fitness service access.
type Server struct {
	mcpServer *mcp.Server
	svc       *fitness.Service
}

// NewServer creates a new MCP server over the given service.
func NewServer(svc *fitness.Service, version string) (*Server, error) {
	if svc == nil {
		return nil, errors.New("fitness service is required")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fittrack",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
