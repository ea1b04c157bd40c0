package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/tui"
)

// tuiCmd launches the live dashboard.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive track dashboard",
	Long: `Launch the full-screen dashboard over the conductor directory. The
board shows every track with status, priority, and progress; file changes
are picked up live while the dashboard runs.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("no-watch", false, "disable live file watching")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.ConductorDir); err != nil {
		return fmt.Errorf("conductor directory %s: %w", cfg.ConductorDir, err)
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch = false
	}

	return tui.Run(cfg)
}
