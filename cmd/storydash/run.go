package main

import (
	"github.com/spf13/cobra"

	"storydash/internal/infrastructure"
	"storydash/internal/services"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the three chart tables and print them",
		Long: `Compute the delivery-time, city-customer and category-sales tables and
print them as markdown. With --explain every intermediate table is printed
before the chart it feeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			svc, _, err := newDashboard(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := svc.Run(infrastructure.EnsureTraceID(cmd.Context()), services.Request{Explain: explain})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, explain)
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "print intermediate tables")
	return cmd
}
