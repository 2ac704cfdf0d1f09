package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"storydash/internal/charts"
	"storydash/internal/dataprocessing"
	apierrors "storydash/internal/errors"
	"storydash/internal/exporter"
	"storydash/internal/services"
)

const (
	pngSuffix    = ".png"
	xlsxMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportName   = "storydash.xlsx"
)

// ChartResponse is the JSON body of a chart endpoint
type ChartResponse struct {
	Chart    dataprocessing.ChartID `json:"chart"`
	RunID    string                 `json:"run_id"`
	RowLimit int                    `json:"row_limit"`
	Count    int                    `json:"count"`
	Rows     any                    `json:"rows"`
	Steps    []dataprocessing.Table `json:"steps,omitempty"`
}

// DashboardHandler serves the chart tables, their PNG renderings, the
// choropleth layer and the workbook export
type DashboardHandler struct {
	service      DashboardServiceInterface
	renderer     *charts.Renderer
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, renderer *charts.Renderer, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if renderer == nil {
		renderer = charts.NewRenderer(charts.DefaultSize)
	}
	return &DashboardHandler{
		service:      service,
		renderer:     renderer,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes, mounted under /api/charts
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{chart}", h.GetChart)
	return r
}

// GetChart handles GET /api/charts/{chart} and GET /api/charts/{chart}.png
func (h *DashboardHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	asPNG := strings.HasSuffix(name, pngSuffix)
	id := dataprocessing.ChartID(strings.TrimSuffix(name, pngSuffix))

	if !knownChart(id) {
		h.errorHandler.HandleError(w, r, apierrors.NotFoundError(fmt.Sprintf("chart %q", id)))
		return
	}

	req, apiErr := parseRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.Run(r.Context(), req)
	if err == nil {
		// the run is detached from the request; report a deadline that passed meanwhile
		err = r.Context().Err()
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if err := result.ChartErr(id); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if asPNG {
		h.writePNG(w, r, id, result)
		return
	}

	rowLimit := req.Rows
	if rowLimit == 0 {
		rowLimit = h.service.DefaultRows()
	}
	resp := ChartResponse{Chart: id, RunID: result.RunID, RowLimit: rowLimit}
	switch id {
	case dataprocessing.ChartDeliveryTimes:
		resp.Rows, resp.Count, resp.Steps = result.DeliveryTimes.Rows, len(result.DeliveryTimes.Rows), result.DeliveryTimes.Steps
	case dataprocessing.ChartCityCustomers:
		resp.Rows, resp.Count, resp.Steps = result.CityCustomers.Rows, len(result.CityCustomers.Rows), result.CityCustomers.Steps
	case dataprocessing.ChartCategorySales:
		resp.Rows, resp.Count, resp.Steps = result.CategorySales.Rows, len(result.CategorySales.Rows), result.CategorySales.Steps
	}

	h.logger.DebugContext(r.Context(), "chart served",
		slog.String("chart", string(id)),
		slog.Int("count", resp.Count),
		slog.String("request_id", middleware.GetReqID(r.Context())))

	render.JSON(w, r, resp)
}

// GetChoropleth handles GET /api/geo/choropleth
func (h *DashboardHandler) GetChoropleth(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	choropleth, err := h.service.Choropleth(r.Context(), req)
	if err == nil {
		err = r.Context().Err()
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, choropleth)
}

// ExportWorkbook handles GET /api/export.xlsx. Charts that failed are left
// out of the workbook; if every chart failed the first error is returned.
func (h *DashboardHandler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseRequest(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	result, err := h.service.Run(r.Context(), req)
	if err == nil {
		err = r.Context().Err()
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	tables := result.Tables()
	if len(tables) == 0 {
		h.errorHandler.HandleError(w, r, result.Err())
		return
	}

	var buf bytes.Buffer
	if err := exporter.WriteWorkbook(&buf, tables); err != nil {
		h.logger.ErrorContext(r.Context(), "workbook export failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	w.Header().Set("Content-Type", xlsxMIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		h.logger.WarnContext(r.Context(), "workbook write interrupted", slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) writePNG(w http.ResponseWriter, r *http.Request, id dataprocessing.ChartID, result *dataprocessing.Result) {
	var buf bytes.Buffer
	var err error
	switch id {
	case dataprocessing.ChartDeliveryTimes:
		err = h.renderer.DeliveryTimes(&buf, result.DeliveryTimes.Rows)
	case dataprocessing.ChartCityCustomers:
		err = h.renderer.CityCustomers(&buf, result.CityCustomers.Rows)
	case dataprocessing.ChartCategorySales:
		err = h.renderer.CategorySales(&buf, result.CategorySales.Rows)
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "chart rendering failed",
			slog.String("chart", string(id)),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrRenderFailed)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		h.logger.WarnContext(r.Context(), "png write interrupted", slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrInvalidRowLimit) {
		h.errorHandler.HandleError(w, r, apierrors.InvalidParameterWithError("rows", err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// parseRequest reads ?rows= and ?explain=. An absent rows parameter selects
// the configured default.
func parseRequest(r *http.Request) (services.Request, *apierrors.APIError) {
	var req services.Request
	q := r.URL.Query()

	if raw := q.Get("rows"); raw != "" {
		rows, err := strconv.Atoi(raw)
		if err != nil {
			return req, apierrors.InvalidParameterWithError("rows", err)
		}
		if rows == 0 {
			return req, apierrors.ErrValidation("rows", "rows must be between 1 and 10000")
		}
		req.Rows = rows
	}

	if raw := q.Get("explain"); raw != "" {
		explain, err := strconv.ParseBool(raw)
		if err != nil {
			return req, apierrors.InvalidParameterWithError("explain", err)
		}
		req.Explain = explain
	}

	return req, nil
}

func knownChart(id dataprocessing.ChartID) bool {
	for _, c := range dataprocessing.Charts {
		if c == id {
			return true
		}
	}
	return false
}
