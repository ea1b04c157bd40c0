package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/query"
)

// searchCmd finds tracks by ID, title, or tag substring.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tracks by ID, title, or tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("tag", "", "match an exact tag instead of a substring")
	searchCmd.Flags().String("priority", "", "filter by priority level instead")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, tracks, err := loadTracks()
	if err != nil {
		return err
	}

	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		return printJSON(query.ByTag(tracks, tag))
	}
	if prio, _ := cmd.Flags().GetString("priority"); prio != "" {
		return printJSON(query.ByPriority(tracks, prio))
	}
	return printJSON(query.Search(tracks, args[0]))
}
