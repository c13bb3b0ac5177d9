package tools

import (
	"context"
	"os"

	"rez/internal/auth"
	"rez/internal/config"
	"rez/internal/portal"
	"rez/internal/session"
	"rez/internal/token"
	"rez/pkg/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the portal as MCP tools. Every tool except login runs
// behind the auth gate, so handlers can assume a live session record is
// attached to their context.
type Server struct {
	cfg      config.RezConfig
	signer   *token.Signer
	sessions *session.Store
	portal   *portal.Client

	mcpServer            *server.MCPServer
	streamableHTTPServer *server.StreamableHTTPServer
	stdioServer          *server.StdioServer
}

// NewServer builds the MCP server with all tools registered.
func NewServer(cfg config.RezConfig, signer *token.Signer, sessions *session.Store,
	portalClient *portal.Client, gate *auth.Gate) *Server {

	mcpServer := server.NewMCPServer(
		"rez",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(gate.Middleware),
	)

	s := &Server{
		cfg:       cfg,
		signer:    signer,
		sessions:  sessions,
		portal:    portalClient,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// StreamableHTTPHandler returns the streamable HTTP transport so it can
// be mounted next to the auth endpoints on one listener.
func (s *Server) StreamableHTTPHandler() *server.StreamableHTTPServer {
	if s.streamableHTTPServer == nil {
		s.streamableHTTPServer = server.NewStreamableHTTPServer(s.mcpServer)
	}
	return s.streamableHTTPServer
}

// ServeStdio speaks MCP over the process's stdin/stdout. It blocks
// until the context is cancelled or the client closes the stream.
func (s *Server) ServeStdio(ctx context.Context) error {
	logging.Info("Tools", "Starting MCP server with stdio transport")
	s.stdioServer = server.NewStdioServer(s.mcpServer)
	return s.stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

