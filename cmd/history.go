package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/history"
)

// historyCmd prints recent load statistics from the local history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent load statistics",
	Long: `Show statistics for recent loads of the conductor directory: when
each load ran, how long it took, and the track and task counts it saw.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of loads to show")
	rootCmd.AddCommand(historyCmd)
}

// loadRecord is the JSON shape for one history row.
type loadRecord struct {
	StartedAt      string `json:"started_at"`
	DurationMS     int64  `json:"duration_ms"`
	Scope          string `json:"scope"`
	TracksTotal    int    `json:"tracks_total"`
	TracksNew      int    `json:"tracks_new"`
	TracksActive   int    `json:"tracks_active"`
	TracksBlocked  int    `json:"tracks_blocked"`
	TracksComplete int    `json:"tracks_complete"`
	TasksTotal     int    `json:"tasks_total"`
	TasksDone      int    `json:"tasks_done"`
	ParseErrors    int    `json:"parse_errors"`
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := history.Open(ctx, history.DBPath(cfg.StateDir))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	loads, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}

	records := make([]loadRecord, 0, len(loads))
	for _, st := range loads {
		records = append(records, loadRecord{
			StartedAt:      st.StartedAt.UTC().Format(time.RFC3339),
			DurationMS:     st.Duration.Milliseconds(),
			Scope:          st.Scope,
			TracksTotal:    st.TracksTotal,
			TracksNew:      st.TracksNew,
			TracksActive:   st.TracksActive,
			TracksBlocked:  st.TracksBlocked,
			TracksComplete: st.TracksComplete,
			TasksTotal:     st.TasksTotal,
			TasksDone:      st.TasksDone,
			ParseErrors:    st.ParseErrors,
		})
	}
	return printJSON(records)
}
