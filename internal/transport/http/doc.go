// Package http implements the HTTP handlers of the dashboard. Handlers are a
// thin layer over the services package: they parse query parameters, call the
// service and format the response.
//
// # Routes
//
//	GET /                          dashboard page (Plotly, embedded HTML)
//	GET /api/charts/{chart}        chart table as JSON (?rows=N&explain=true)
//	GET /api/charts/{chart}.png    chart rendered as PNG
//	GET /api/geo/choropleth        municipality boundaries with customer counts
//	GET /api/export.xlsx           workbook with one sheet per chart
//	GET /api/health                ok or degraded, listing missing input files
//
// where {chart} is delivery-times, city-customers or category-sales.
//
// # Error Handling
//
// Errors are written as RFC 7807 problem details by the shared ErrorHandler. A
// missing input file yields 404 with a "source" extension naming the file, so
// the page can tell the user which dataset is absent while the other charts
// keep rendering.
package http
