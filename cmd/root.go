package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/conductor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "conductor",
	Short: "Dashboard for conductor track directories",
	Long: `Conductor reads a conductor directory (tracks.md index, per-track
metadata and plan files) and presents the merged track state as a live
TUI dashboard, CLI reports, or an MCP server for coding agents.`,
	RunE: runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .conductor.yaml)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "conductor directory (default ./conductor)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("conductor_dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".conductor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("CONDUCTOR")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// loadConfig resolves the effective configuration and sets up logging.
// Logging goes to stderr so stdout stays clean for JSON output and MCP.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return cfg, nil
}

// runRootDefault auto-launches the TUI when the conductor directory exists.
// Otherwise it falls back to showing help.
func runRootDefault(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.ConductorDir); os.IsNotExist(err) {
		return cmd.Help()
	}
	return runTUI(tuiCmd, nil)
}
