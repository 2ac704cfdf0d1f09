package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"storydash/internal/charts"
	"storydash/internal/config"
	"storydash/internal/dataprocessing"
)

// Request selects the rows and detail level of one dashboard computation.
// Zero Rows means the configured default.
type Request struct {
	Rows    int
	Explain bool
}

// DashboardService computes the dashboard tables on demand
type DashboardService struct {
	source       dataprocessing.Source
	pipelineCfg  config.PipelineConfig
	paths        *config.Paths
	codeProperty string
	recorder     dataprocessing.Recorder
	logger       *slog.Logger

	group singleflight.Group

	boundariesMu sync.Mutex
	boundaries   *charts.FeatureCollection
}

// NewDashboardService creates a service reading from source. recorder may be nil.
func NewDashboardService(cfg *config.Config, paths *config.Paths, source dataprocessing.Source, recorder dataprocessing.Recorder, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "dashboard"))

	logger.Info("DashboardService initialized",
		slog.String("data_dir", paths.DataDir),
		slog.Int("default_rows", cfg.Pipeline.RowLimit))

	return &DashboardService{
		source:       source,
		pipelineCfg:  cfg.Pipeline,
		paths:        paths,
		codeProperty: cfg.Sources.Columns.BoundaryCodeProperty,
		recorder:     recorder,
		logger:       logger,
	}
}

// DefaultRows returns the configured row limit
func (s *DashboardService) DefaultRows() int {
	return s.pipelineCfg.RowLimit
}

// Run computes the three charts for req. Concurrent calls with the same request
// share one pipeline run. Chart failures are reported inside the result; the
// returned error is set only for an invalid request.
func (s *DashboardService) Run(ctx context.Context, req Request) (*dataprocessing.Result, error) {
	cfg, err := s.pipelineConfig(req)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("rows=%d explain=%t", cfg.RowLimit, cfg.Explain)
	v, _, shared := s.group.Do(key, func() (interface{}, error) {
		// the run outlives a cancelled caller so that waiting callers still get it
		return s.newPipeline(cfg).Run(context.WithoutCancel(ctx)), nil
	})
	result := v.(*dataprocessing.Result)

	s.logger.DebugContext(ctx, "dashboard computed",
		slog.String("run_id", result.RunID),
		slog.Int("rows", cfg.RowLimit),
		slog.Bool("explain", cfg.Explain),
		slog.Bool("shared", shared))

	return result, nil
}

// Choropleth merges the city-customer counts into the municipality boundaries
func (s *DashboardService) Choropleth(ctx context.Context, req Request) (*charts.Choropleth, error) {
	result, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := result.CityCustomers.Err; err != nil {
		return nil, err
	}

	boundaries, err := s.loadBoundaries()
	if err != nil {
		return nil, err
	}
	return charts.BuildChoropleth(boundaries, result.CityCustomers.Rows, s.codeProperty), nil
}

// loadBoundaries reads the boundary file once and keeps it for later requests.
// A failed read is retried on the next call.
func (s *DashboardService) loadBoundaries() (*charts.FeatureCollection, error) {
	s.boundariesMu.Lock()
	defer s.boundariesMu.Unlock()

	if s.boundaries != nil {
		return s.boundaries, nil
	}

	fc, err := charts.LoadBoundaries(s.paths.Boundaries)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || s.paths.Boundaries == "" {
			return nil, &dataprocessing.SourceError{Source: "boundaries", Path: s.paths.Boundaries, Err: err}
		}
		return nil, err
	}

	s.logger.Info("Boundaries loaded",
		slog.String("path", s.paths.Boundaries),
		slog.Int("features", len(fc.Features)))
	s.boundaries = fc
	return fc, nil
}

func (s *DashboardService) pipelineConfig(req Request) (config.PipelineConfig, error) {
	cfg := s.pipelineCfg
	if req.Rows != 0 {
		if err := config.ValidateRowLimit(req.Rows); err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrInvalidRowLimit, err)
		}
		cfg.RowLimit = req.Rows
	}
	cfg.Explain = cfg.Explain || req.Explain
	return cfg, nil
}

func (s *DashboardService) newPipeline(cfg config.PipelineConfig) *dataprocessing.Pipeline {
	return dataprocessing.NewPipeline(s.source, cfg,
		dataprocessing.WithLogger(s.logger),
		dataprocessing.WithRecorder(s.recorder),
	)
}
