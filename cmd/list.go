package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// listCmd prints track summaries as JSON.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracks with status and progress",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("status", "", "filter by status (new, active, blocked, complete)")
	listCmd.Flags().String("sort", "updated", "sort order: updated or progress")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	_, tracks, err := loadTracks()
	if err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	sortMode := query.SortUpdated
	if v, _ := cmd.Flags().GetString("sort"); v == "progress" {
		sortMode = query.SortProgress
	}

	return printJSON(query.Summaries(tracks, status, sortMode))
}
