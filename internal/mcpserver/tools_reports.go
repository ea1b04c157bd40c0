package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/conductor/internal/query"
)

type dependenciesInput struct {
	TrackID string `json:"track_id,omitempty" jsonschema:"description=Restrict the graph to a single track; empty for all tracks"`
}

type dependenciesOutput struct {
	Dependencies []query.DependencyInfo `json:"dependencies"`
}

type outstandingOutput struct {
	Tasks []query.OutstandingTask `json:"tasks"`
}

// registerReportTools registers the cross-track reporting tools.
func (s *Server) registerReportTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_summary",
		Description: "Get aggregate summary stats: total track count, counts per status, overall progress percentage, and total task counts.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, query.AggregateSummary, error) {
		return nil, query.Summary(s.tracks), nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_track_dependencies",
		Description: "Get the dependency graph showing what each track depends on and what it blocks. Optionally filter to a single track.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input dependenciesInput) (*mcp.CallToolResult, dependenciesOutput, error) {
		deps, err := query.Dependencies(s.tracks, input.TrackID)
		if err != nil {
			return nil, dependenciesOutput{}, err
		}
		return nil, dependenciesOutput{Dependencies: deps}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_outstanding_tasks",
		Description: "Get all incomplete tasks across all tracks. Returns the track, phase, and task text for each.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, outstandingOutput, error) {
		return nil, outstandingOutput{Tasks: query.OutstandingTasks(s.tracks)}, nil
	})
}
