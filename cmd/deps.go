package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// depsCmd prints the dependency graph.
var depsCmd = &cobra.Command{
	Use:   "deps [track-id]",
	Short: "Show track dependencies and what each track blocks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
}

func runDeps(_ *cobra.Command, args []string) error {
	_, tracks, err := loadTracks()
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}
	deps, err := query.Dependencies(tracks, id)
	if err != nil {
		return err
	}
	return printJSON(deps)
}
