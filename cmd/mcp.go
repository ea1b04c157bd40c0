package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/conductor/internal/mcpserver"
)

// mcpCmd serves the query tools over the Model Context Protocol.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve track queries over MCP (stdio)",
	Long: `Serve the track query tools over the Model Context Protocol on
stdin/stdout, for use by coding agents. Tracks are loaded once at startup;
restart the server to pick up changes.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := mcpserver.New(cfg.ConductorDir)
	if err != nil {
		return err
	}
	return srv.Run(cmd.Context())
}
