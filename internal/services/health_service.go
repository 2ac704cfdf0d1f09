package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"storydash/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     *config.Paths
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Sources   map[string]string      `json:"missing_sources,omitempty"`
}

// Health states
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusAlive    = "alive"
)

// NewHealthService creates a new health service
func NewHealthService(version string, paths *config.Paths, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck reports "ok" when every input file is present and "degraded"
// otherwise. A degraded dashboard still serves the charts whose files exist.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
	}

	if hs.paths != nil {
		if missing := hs.paths.MissingSources(); len(missing) > 0 {
			status.Status = StatusDegraded
			status.Sources = missing
		}
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status),
		slog.Int("missing_sources", len(status.Sources)))

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]string {
	return map[string]string{
		"name":       config.AppName,
		"version":    hs.version,
		"go_version": runtime.Version(),
	}
}
