package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"storydash/internal/config"
	"storydash/internal/dataprocessing"
	"storydash/internal/infrastructure"
	"storydash/internal/services"
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	rows int
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "storydash",
		Short:         config.AppName,
		Long:          "Data-storytelling dashboard over the Olist e-commerce datasets.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().IntVar(&flags.rows, "rows", config.DefaultRowLimit,
		fmt.Sprintf("rows to load from the orders dataset (%d..%d)", config.MinRowLimit, config.MaxRowLimit))

	root.AddCommand(
		newServeCmd(flags),
		newRunCmd(flags),
		newExportCmd(flags),
	)
	return root
}

// loadConfig loads the configuration and applies --rows when it was given
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("rows") {
		if err := config.ValidateRowLimit(flags.rows); err != nil {
			return nil, fmt.Errorf("invalid --rows: %w", err)
		}
		cfg.Pipeline.RowLimit = flags.rows
	}
	return cfg, nil
}

// newDashboard builds the dashboard service for one-shot commands. Logs go to
// stderr so that stdout carries only the tables.
func newDashboard(cmd *cobra.Command, cfg *config.Config) (*services.DashboardService, *slog.Logger, error) {
	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	paths, err := config.ResolvePaths(cfg.Sources)
	if err != nil {
		return nil, nil, err
	}
	paths.LogPathResolution(logger)

	source := dataprocessing.NewCSVSource(paths, cfg.Sources.Columns)
	return services.NewDashboardService(cfg, paths, source, nil, logger), logger, nil
}
