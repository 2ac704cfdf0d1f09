// Package services holds the application services behind the HTTP handlers and
// the CLI.
//
// DashboardService runs the data-preparation pipeline for a request's row limit
// and explain flag. Identical requests arriving while a run is in flight share
// that run. HealthService reports liveness and which input files are missing.
package services
