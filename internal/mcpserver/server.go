// Package mcpserver exposes the query layer as read-only tools over the
// Model Context Protocol, so coding agents can ask about track progress
// without parsing the conductor directory themselves.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/conductor/internal/model"
	"github.com/papapumpkin/conductor/internal/parser"
)

// Version is the conductor MCP server version, matching the module.
const Version = "0.1.0"

// Server wraps an MCP server over an immutable track snapshot. Tracks are
// loaded once at startup; a restart picks up new data.
type Server struct {
	dir    string
	tracks map[model.TrackID]*model.Track
	mcp    *mcp.Server
}

// New loads the conductor directory and registers the query tools. A missing
// tracks.md is fatal here, same as any other load.
func New(dir string) (*Server, error) {
	tracks, parseErrs, err := parser.LoadAll(dir)
	if err != nil {
		return nil, fmt.Errorf("mcpserver: %w", err)
	}
	if parseErrs > 0 {
		slog.Warn("load tolerated per-track parse failures", "count", parseErrs)
	}

	s := &Server{
		dir:    dir,
		tracks: tracks,
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "conductor",
			Version: Version,
		}, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects. Logging must go to stderr; stdout carries JSON-RPC.
func (s *Server) Run(ctx context.Context) error {
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcpserver: run: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.registerTrackTools()
	s.registerReportTools()
}
