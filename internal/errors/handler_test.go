package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storydash/internal/dataprocessing"
	"storydash/internal/shared/testutil"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	unavailable := &dataprocessing.SourceError{Source: "customers", Path: "/data/customers.csv", Err: os.ErrNotExist}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantTitle  string
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantTitle:  "Request Timeout",
		},
		{
			name:       "api error",
			err:        ErrInvalidParameter,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Bad Request",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "INVALID_PARAMETER", body["error_code"])
			},
		},
		{
			name:       "api error with details",
			err:        InvalidParameterWithError("rows", fmt.Errorf("row limit 0 outside 1..10000")),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Bad Request",
			check: func(t *testing.T, body map[string]any) {
				details, ok := body["details"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "rows", details["field"])
			},
		},
		{
			name:       "wrapped source unavailable",
			err:        fmt.Errorf("city-customers: %w", unavailable),
			wantStatus: http.StatusNotFound,
			wantType:   TypeSourceUnavailable,
			wantTitle:  "Source Unavailable",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "customers", body["source"])
				assert.Equal(t, "customers source not found", body["detail"])
				assert.NotContains(t, body["detail"], "/data/customers.csv")
			},
		},
		{
			name:       "missing column",
			err:        fmt.Errorf("%w: products has no \"categoria\" column", dataprocessing.ErrMissingColumn),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMissingColumn,
			wantTitle:  "Missing Column",
		},
		{
			name:       "missing column names source and column only",
			err:        &dataprocessing.ColumnError{Source: "products", Path: "/data/products.csv", Column: "categoria"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeMissingColumn,
			wantTitle:  "Missing Column",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, `products source has no "categoria" column`, body["detail"])
				assert.Equal(t, "products", body["source"])
			},
		},
		{
			name:       "unknown error stays opaque",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantTitle:  "Internal Server Error",
			check: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body["detail"], "disk on fire")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodGet, "/api/charts/city-customers", nil)
			rec := httptest.NewRecorder()
			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, tt.wantTitle, body["title"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/api/charts/city-customers", body["instance"])
			assert.Contains(t, body, "trace_id")
			assert.NotContains(t, body, "stack")

			assert.True(t, logs.ContainsMessage("request failed"))
			assert.True(t, logs.ContainsAttr("component", "error_handler"))
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, false).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, rec.Body.Len())
	assert.Equal(t, 0, logs.Count())
}

func TestErrorHandler_LogLevel(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodGet, "/api/charts/x", nil)

	handler.HandleError(httptest.NewRecorder(), req, NotFoundError("chart x"))
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelWarn), 1)

	handler.HandleError(httptest.NewRecorder(), req, ErrRenderFailed)
	assert.Len(t, logs.GetRecordsByLevel(slog.LevelError), 1)
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	rec := httptest.NewRecorder()

	NewErrorHandler(logger, true).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), ErrInternalServer)

	assert.Contains(t, decodeProblem(t, rec), "stack")
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, rec)["type"])

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, decodeProblem(t, rec)["detail"], "DELETE")
}

func TestErrorMiddlewareLogsByStatus(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	mw := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	mw.Handler(teapot).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	testutil.AssertLogContains(t, logs, slog.LevelWarn, "http request")
	assert.True(t, logs.ContainsAttr("query", "x=1"))
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	mw := NewErrorMiddleware(NewErrorHandler(logger, false), logger)

	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	mw.Handler(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/charts/delivery-times", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, decodeProblem(t, rec)["type"])
	testutil.AssertLogContains(t, logs, slog.LevelError, "panic recovered")
}
