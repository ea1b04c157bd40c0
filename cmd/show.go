package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// showCmd prints full detail for one track.
var showCmd = &cobra.Command{
	Use:   "show <track-id>",
	Short: "Show full detail for a track",
	Long: `Show full detail for a single track: phases, tasks, dependencies,
metadata, and file paths. The argument may be a full track ID or any
substring that matches exactly one track.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, tracks, err := loadTracks()
	if err != nil {
		return err
	}

	detail, err := query.Detail(tracks, cfg.ConductorDir, args[0])
	if err != nil {
		return err
	}
	return printJSON(detail)
}
