// Package charts renders the dashboard tables as static images and prepares the
// municipality choropleth.
//
// PNG output is drawn with gonum.org/v1/plot. Interactive charts are drawn in
// the browser; this package only supplies their data and the boundary layer.
package charts
