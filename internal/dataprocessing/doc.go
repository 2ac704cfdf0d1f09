// Package dataprocessing turns the raw Olist datasets into the three chart-ready
// tables of the dashboard. It is the only package holding business logic; the
// charts, exporter and HTTP layers only consume its output.
//
// # Architecture
//
// The package is organized into three parts:
//
// 1. Source: reads the CSV inputs (orders, customers, municipalities, products,
// order items) into typed rows
// 2. Derivations: pure functions producing one table each
// 3. Pipeline: runs the derivations in order and isolates their failures
//
// # Derivations
//
//	DeriveDeliveryTimes     orders -> (purchase date, lag in days)
//	JoinCityCustomers       municipalities x customers -> per-city customer counts
//	AggregateCategorySales  products x order items -> per-category item counts
//
// City names are matched through NormalizeText, which strips diacritics and
// lowercases. Customers carrying the state token "SP" instead of a dialing code
// are treated as area code 11.
//
// # Usage
//
//	src := dataprocessing.NewCSVSource(paths, cfg.Sources.Columns)
//	p := dataprocessing.NewPipeline(src, cfg.Pipeline)
//	result := p.Run(ctx)
//	if err := result.DeliveryTimes.Err; errors.Is(err, dataprocessing.ErrSourceUnavailable) {
//	    // only this chart is missing
//	}
//
// # Error Handling
//
// A missing input file halts only the chart that depends on it. Unparseable
// timestamps and rows without a join partner are dropped silently; they show up
// only as a smaller output table. An optional Recorder receives aggregate row
// counts for diagnostics.
//
// # Explain Mode
//
// With PipelineConfig.Explain set, every chart result carries the intermediate
// tables it was built from, in the order they were produced.
package dataprocessing
