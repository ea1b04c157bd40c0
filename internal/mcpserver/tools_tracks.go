package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/conductor/internal/query"
)

type listTracksInput struct {
	Status string `json:"status,omitempty" jsonschema:"description=Filter by status (new, active, blocked, complete); default all"`
	Sort   string `json:"sort,omitempty" jsonschema:"description=Sort order: updated (default) or progress"`
}

type listTracksOutput struct {
	Tracks []query.TrackSummary `json:"tracks"`
}

type trackDetailInput struct {
	TrackID string `json:"track_id" jsonschema:"description=Track ID or unique ID substring"`
}

type trackDetailOutput struct {
	Track query.TrackDetail `json:"track"`
}

type searchTracksInput struct {
	Query string `json:"query" jsonschema:"description=Case-insensitive substring matched against ID, title, and tags"`
}

type byTagInput struct {
	Tag string `json:"tag" jsonschema:"description=Exact tag (case-insensitive)"`
}

type byPriorityInput struct {
	Priority string `json:"priority" jsonschema:"description=Priority level: critical, high, medium, or low"`
}

type filePathsInput struct {
	TrackID string `json:"track_id" jsonschema:"description=Exact track ID"`
}

// registerTrackTools registers the per-track lookup tools.
func (s *Server) registerTrackTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_tracks",
		Description: "List all tracks with optional status filtering and sorting. Returns summary info including progress, tasks, tags, and dates.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input listTracksInput) (*mcp.CallToolResult, listTracksOutput, error) {
		sortMode := query.SortUpdated
		if input.Sort == "progress" {
			sortMode = query.SortProgress
		}
		return nil, listTracksOutput{Tracks: query.Summaries(s.tracks, input.Status, sortMode)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_track_detail",
		Description: "Get full detail for a single track including plan phases, tasks, dependencies, file paths, and all metadata.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input trackDetailInput) (*mcp.CallToolResult, trackDetailOutput, error) {
		detail, err := query.Detail(s.tracks, s.dir, input.TrackID)
		if err != nil {
			return nil, trackDetailOutput{}, err
		}
		return nil, trackDetailOutput{Track: *detail}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_tracks",
		Description: "Search tracks by title, ID, or tag substring (case-insensitive). Returns matching track summaries.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input searchTracksInput) (*mcp.CallToolResult, listTracksOutput, error) {
		return nil, listTracksOutput{Tracks: query.Search(s.tracks, input.Query)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tracks_by_tag",
		Description: "Filter tracks by tag (case-insensitive). Returns matching track summaries.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input byTagInput) (*mcp.CallToolResult, listTracksOutput, error) {
		return nil, listTracksOutput{Tracks: query.ByTag(s.tracks, input.Tag)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tracks_by_priority",
		Description: "Filter tracks by priority level (critical, high, medium, low). Returns matching track summaries.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input byPriorityInput) (*mcp.CallToolResult, listTracksOutput, error) {
		return nil, listTracksOutput{Tracks: query.ByPriority(s.tracks, input.Priority)}, nil
	})

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_track_file_paths",
		Description: "Get filesystem paths for a track's directory, plan.md, and metadata files.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input filePathsInput) (*mcp.CallToolResult, query.FilePathSet, error) {
		return nil, query.FilePaths(s.dir, input.TrackID), nil
	})
}
