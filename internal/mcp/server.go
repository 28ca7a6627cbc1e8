// Package mcp assembles the platewise MCP server: tool definitions, their
// handlers, and the stdio and SSE transports.
package mcp

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/platewise/platewise/internal/planner"
	"github.com/platewise/platewise/internal/version"
)

const serverName = "platewise"

const instructions = "platewise MCP server. Provides a tool that generates day or week meal plans " +
	"through the Spoonacular API and returns both the raw plan document and a formatted, " +
	"shopping-ready text report."

// generator is the planner capability the server needs.
type generator interface {
	Generate(ctx context.Context, req planner.Request) (*planner.Envelope, error)
}

// Server wraps the MCP protocol machinery around the planner service.
type Server struct {
	planner generator
	mcp     *server.MCPServer
	logger  *slog.Logger
}

// NewServer creates the server and registers its tools. A nil logger falls
// back to the default.
func NewServer(svc generator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{planner: svc, logger: logger}
	s.mcp = server.NewMCPServer(serverName, version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	s.mcp.AddTool(generateMealPlanTool(), s.handleGenerateMealPlan)
	return s
}

// ServeStdio runs the stdio transport until ctx is cancelled or stdin
// closes. All diagnostics go to stderr so stdout stays clean for JSON-RPC.
func (s *Server) ServeStdio(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "[platewise-mcp] ", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// SSEHandler returns an HTTP handler serving the same tools over the SSE
// transport. basePath must match the path the handler is mounted under.
func (s *Server) SSEHandler(basePath string) http.Handler {
	return server.NewSSEServer(s.mcp, server.WithStaticBasePath(basePath))
}
