package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tidinho/dash-leishmaniose/internal/config"
	"github.com/tidinho/dash-leishmaniose/internal/logging"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	snapshotPath string

	cfg     *config.AppConfig
	cfgInfo config.LoadConfigInfo
	logger  *zap.Logger
)

// rootCmd serves the dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "leishdash",
	Short: "Leishmaniasis epidemiological dashboard",
	Long: `leishdash loads a leishmaniasis case snapshot (parquet, xlsx or csv),
filters it by state, municipality, notifying facility and year, and serves
the aggregated views as a local web dashboard.

Run without arguments to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, cfgInfo, err = config.LoadConfigWithInfo(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if snapshotPath != "" {
			cfg.Data.SnapshotPath = snapshotPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", cfgInfo.Path, err)
		}

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("path", cfgInfo.Path),
			zap.Bool("found", cfgInfo.FileFound),
			zap.String("snapshot", cfg.Data.SnapshotPath),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: config.toml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Snapshot file, overrides data.snapshot_path")

	addServeFlags(rootCmd)
	addServeFlags(serveCmd)
	addSelectionFlags(summaryCmd)
	addSelectionFlags(exportCmd)
	summaryCmd.Flags().IntVar(&summaryLimit, "limit", 0, "Municipalities in the ranking (default: dashboard.top_n)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output xlsx path (default: <data_dir>/exports/leishmaniose-<timestamp>.xlsx)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
