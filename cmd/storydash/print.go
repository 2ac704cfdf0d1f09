package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"storydash/internal/dataprocessing"
)

var chartTitles = map[dataprocessing.ChartID]string{
	dataprocessing.ChartDeliveryTimes: "Tempo entre pedido e entrega",
	dataprocessing.ChartCityCustomers: "Tipos de Cliente por Geolocalização",
	dataprocessing.ChartCategorySales: "Qual categoria mais vendeu",
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	stepColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// printResult prints every chart as a markdown table. A failed chart prints
// its error and the remaining charts are still printed.
func printResult(w io.Writer, result *dataprocessing.Result, explain bool) error {
	for _, id := range dataprocessing.Charts {
		headingColor.Fprintf(w, "## %s\n\n", chartTitles[id])

		table, err := result.ChartTable(id)
		if err != nil {
			printChartError(w, id, err)
			fmt.Fprintln(w)
			continue
		}

		if explain {
			for _, step := range result.ChartSteps(id) {
				stepColor.Fprintf(w, "### %s\n\n", step.Name)
				if err := writeTable(w, step); err != nil {
					return err
				}
			}
		}

		if err := writeTable(w, table); err != nil {
			return err
		}
	}
	return nil
}

func printChartError(w io.Writer, id dataprocessing.ChartID, err error) {
	var srcErr *dataprocessing.SourceError
	if errors.As(err, &srcErr) {
		errorColor.Fprintf(w, "%s: source unavailable: %s not found at %s\n", id, srcErr.Source, srcErr.Path)
		return
	}
	errorColor.Fprintf(w, "%s: %v\n", id, err)
}

// writeTable renders t as a markdown table followed by its row count
func writeTable(w io.Writer, t dataprocessing.Table) error {
	alignment := make([]tw.Align, len(t.Columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(t.Columns)
	for _, row := range t.Rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row to %s: %w", t.Name, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render %s: %w", t.Name, err)
	}

	_, err := fmt.Fprintf(w, "\n_%d rows_\n\n", len(t.Rows))
	return err
}
