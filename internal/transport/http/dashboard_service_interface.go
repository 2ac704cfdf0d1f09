package http

import (
	"context"

	"storydash/internal/charts"
	"storydash/internal/dataprocessing"
	"storydash/internal/services"
)

// DashboardServiceInterface defines the dashboard operations used by the handlers
type DashboardServiceInterface interface {
	Run(ctx context.Context, req services.Request) (*dataprocessing.Result, error)
	Choropleth(ctx context.Context, req services.Request) (*charts.Choropleth, error)
	DefaultRows() int
}
