package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// summaryCmd prints aggregate stats across all tracks.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate progress across all tracks",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	_, tracks, err := loadTracks()
	if err != nil {
		return err
	}
	return printJSON(query.Summary(tracks))
}
