package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// tasksCmd prints every incomplete task across all tracks.
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List outstanding tasks across all tracks",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(_ *cobra.Command, _ []string) error {
	_, tracks, err := loadTracks()
	if err != nil {
		return err
	}
	return printJSON(query.OutstandingTasks(tracks))
}
