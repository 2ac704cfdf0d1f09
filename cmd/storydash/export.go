package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"storydash/internal/dataprocessing"
	"storydash/internal/exporter"
	"storydash/internal/infrastructure"
	"storydash/internal/services"
)

const workbookName = "storydash.xlsx"

func newExportCmd(flags *rootFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the chart tables as CSV files and an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			svc, logger, err := newDashboard(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := svc.Run(infrastructure.EnsureTraceID(cmd.Context()), services.Request{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, id := range dataprocessing.Charts {
				if err := result.ChartErr(id); err != nil {
					printChartError(w, id, err)
				}
			}

			tables := result.Tables()
			if len(tables) == 0 {
				return fmt.Errorf("nothing to export: %w", result.Err())
			}

			written, err := exporter.NewCSVWriter(out).WriteTables(tables)
			if err != nil {
				return err
			}

			workbook := filepath.Join(out, workbookName)
			if err := writeWorkbook(workbook, tables); err != nil {
				return err
			}
			written = append(written, workbook)

			logger.Info("Export complete", slog.String("dir", out), slog.Int("files", len(written)))
			for _, path := range written {
				color.New(color.FgGreen).Fprintf(w, "wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "export", "output directory")
	return cmd
}

func writeWorkbook(path string, tables []dataprocessing.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := exporter.WriteWorkbook(f, tables); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
