package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"storydash/internal/config"
	"storydash/pkg/contracts/domain"
)

// ChartID names one of the three derived tables
type ChartID string

const (
	ChartDeliveryTimes ChartID = "delivery-times"
	ChartCityCustomers ChartID = "city-customers"
	ChartCategorySales ChartID = "category-sales"
)

// Charts lists every chart in execution order
var Charts = []ChartID{ChartDeliveryTimes, ChartCityCustomers, ChartCategorySales}

// ChartResult is the outcome of one chart. Err is set when the chart could not
// be computed; Steps holds intermediate tables in explain mode.
type ChartResult[T any] struct {
	Rows  []T
	Err   error
	Steps []Table
}

// Result holds the three chart-ready tables of one pipeline run
type Result struct {
	RunID         string
	DeliveryTimes ChartResult[domain.DeliveryTime]
	CityCustomers ChartResult[domain.CityCustomers]
	CategorySales ChartResult[domain.CategorySales]
}

// Err returns the joined errors of every failed chart, or nil
func (r *Result) Err() error {
	return errors.Join(r.DeliveryTimes.Err, r.CityCustomers.Err, r.CategorySales.Err)
}

// ChartErr returns the error of a single chart
func (r *Result) ChartErr(id ChartID) error {
	switch id {
	case ChartDeliveryTimes:
		return r.DeliveryTimes.Err
	case ChartCityCustomers:
		return r.CityCustomers.Err
	case ChartCategorySales:
		return r.CategorySales.Err
	}
	return nil
}

// Pipeline turns the raw sources into the three chart-ready tables.
// Charts run one after another and fail independently.
type Pipeline struct {
	source   Source
	cfg      config.PipelineConfig
	logger   *slog.Logger
	recorder Recorder
	tracer   trace.Tracer
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used for run-level messages
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithRecorder reports row counts and run outcomes to r
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// NewPipeline creates a pipeline over src configured by cfg
func NewPipeline(src Source, cfg config.PipelineConfig, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:   src,
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: nopRecorder{},
		tracer:   otel.Tracer("storydash/dataprocessing"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "pipeline"))
	return p
}

// AreaCodes returns the configured area-code range
func (p *Pipeline) AreaCodes() AreaCodeRange {
	return AreaCodeRange{Low: p.cfg.AreaCodeLow, High: p.cfg.AreaCodeHigh}
}

// Run computes all three charts. A chart whose source is unavailable carries
// the error in its result; the remaining charts are still computed.
func (p *Pipeline) Run(ctx context.Context) *Result {
	result := &Result{RunID: uuid.NewString()}
	logger := p.logger.With(slog.String("run_id", result.RunID))

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run_id", result.RunID),
			attribute.Int("row_limit", p.cfg.RowLimit),
			attribute.Bool("explain", p.cfg.Explain),
		))
	defer span.End()

	logger.DebugContext(ctx, "pipeline started",
		slog.Int("row_limit", p.cfg.RowLimit),
		slog.Int("area_code_low", p.cfg.AreaCodeLow),
		slog.Int("area_code_high", p.cfg.AreaCodeHigh),
		slog.Bool("explain", p.cfg.Explain))

	result.DeliveryTimes = runChart(ctx, p, logger, ChartDeliveryTimes, p.deliveryTimes)
	result.CityCustomers = runChart(ctx, p, logger, ChartCityCustomers, p.cityCustomers)
	result.CategorySales = runChart(ctx, p, logger, ChartCategorySales, p.categorySales)

	return result
}

// DeliveryTimes computes only the delivery-time chart
func (p *Pipeline) DeliveryTimes(ctx context.Context) ChartResult[domain.DeliveryTime] {
	return runChart(ctx, p, p.logger, ChartDeliveryTimes, p.deliveryTimes)
}

// CityCustomers computes only the city-customer chart
func (p *Pipeline) CityCustomers(ctx context.Context) ChartResult[domain.CityCustomers] {
	return runChart(ctx, p, p.logger, ChartCityCustomers, p.cityCustomers)
}

// CategorySales computes only the category-sales chart
func (p *Pipeline) CategorySales(ctx context.Context) ChartResult[domain.CategorySales] {
	return runChart(ctx, p, p.logger, ChartCategorySales, p.categorySales)
}

type chartFunc[T any] func(ctx context.Context) ([]T, []Table, error)

func runChart[T any](ctx context.Context, p *Pipeline, logger *slog.Logger, id ChartID, fn chartFunc[T]) ChartResult[T] {
	ctx, span := p.tracer.Start(ctx, "pipeline."+string(id))
	defer span.End()

	start := time.Now()
	rows, steps, err := fn(ctx)
	elapsed := time.Since(start)
	p.recorder.RecordRun(id, err, elapsed)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WarnContext(ctx, "chart halted",
			slog.String("chart", string(id)),
			slog.String("error", err.Error()))
		return ChartResult[T]{Err: err}
	}

	span.SetAttributes(attribute.Int("rows.output", len(rows)))
	logger.DebugContext(ctx, "chart computed",
		slog.String("chart", string(id)),
		slog.Int("rows", len(rows)),
		slog.Duration("duration", elapsed))

	if !p.cfg.Explain {
		steps = nil
	}
	return ChartResult[T]{Rows: rows, Steps: steps}
}

func (p *Pipeline) deliveryTimes(ctx context.Context) ([]domain.DeliveryTime, []Table, error) {
	orders, err := p.source.Orders(p.cfg.RowLimit)
	if err != nil {
		return nil, nil, err
	}
	p.recorder.RecordRows(ChartDeliveryTimes, StageRead, len(orders))

	rows := DeriveDeliveryTimes(orders)
	p.recorder.RecordRows(ChartDeliveryTimes, StageOutput, len(rows))

	var steps []Table
	if p.cfg.Explain {
		steps = []Table{ordersTable(orders), deliveryTimesTable(rows)}
	}
	return rows, steps, nil
}

func (p *Pipeline) cityCustomers(ctx context.Context) ([]domain.CityCustomers, []Table, error) {
	municipalities, err := p.source.Municipalities()
	if err != nil {
		return nil, nil, err
	}
	customers, err := p.source.Customers()
	if err != nil {
		return nil, nil, err
	}
	p.recorder.RecordRows(ChartCityCustomers, StageRead, len(municipalities)+len(customers))

	areaCodes := p.AreaCodes()
	keptMunicipalities := filterMunicipalities(municipalities, areaCodes)
	keptCustomers := filterCustomers(customers, areaCodes)
	joined := innerJoinCities(keptMunicipalities, keptCustomers)
	counts := countByCity(joined)
	stampCityCounts(joined, counts)
	p.recorder.RecordRows(ChartCityCustomers, StageOutput, len(joined))

	var steps []Table
	if p.cfg.Explain {
		steps = []Table{
			municipalitiesTable(keptMunicipalities),
			customersTable(keptCustomers),
			cityCountsTable(counts),
			cityCustomersTable(joined),
		}
	}
	return joined, steps, nil
}

func (p *Pipeline) categorySales(ctx context.Context) ([]domain.CategorySales, []Table, error) {
	products, err := p.source.Products()
	if err != nil {
		return nil, nil, err
	}
	items, err := p.source.OrderItems()
	if err != nil {
		return nil, nil, err
	}
	p.recorder.RecordRows(ChartCategorySales, StageRead, len(products)+len(items))

	joined := joinItemsToProducts(products, items)
	counts := countByCategory(joined)
	rows := leftJoinCounts(distinctCategories(products), counts)
	p.recorder.RecordRows(ChartCategorySales, StageOutput, len(rows))

	var steps []Table
	if p.cfg.Explain {
		steps = []Table{categorizedItemsTable(joined), categorySalesTable(rows)}
	}
	return rows, steps, nil
}
