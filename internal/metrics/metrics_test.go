package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storydash/internal/dataprocessing"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRegistryRecordsPipeline(t *testing.T) {
	r := NewRegistry()

	r.RecordRows(dataprocessing.ChartDeliveryTimes, dataprocessing.StageRead, 5000)
	r.RecordRows(dataprocessing.ChartDeliveryTimes, dataprocessing.StageOutput, 4890)
	r.RecordRun(dataprocessing.ChartDeliveryTimes, nil, 120*time.Millisecond)
	r.RecordRun(dataprocessing.ChartCityCustomers, errors.New("customers missing"), time.Millisecond)

	out := scrape(t, r)
	assert.Contains(t, out, `storydash_pipeline_rows_total{chart="delivery-times",stage="read"} 5000`)
	assert.Contains(t, out, `storydash_pipeline_rows_total{chart="delivery-times",stage="output"} 4890`)
	assert.Contains(t, out, `storydash_pipeline_runs_total{chart="delivery-times",status="ok"} 1`)
	assert.Contains(t, out, `storydash_pipeline_runs_total{chart="city-customers",status="failed"} 1`)
	assert.Contains(t, out, `storydash_pipeline_duration_seconds_count{chart="delivery-times"} 1`)
	assert.Contains(t, out, "go_goroutines")
}

func TestRegistryObserveRequest(t *testing.T) {
	r := NewRegistry()

	r.ObserveRequest(http.MethodGet, "/api/charts/{chart}", http.StatusOK, 10*time.Millisecond)
	r.ObserveRequest(http.MethodGet, "/api/charts/{chart}", http.StatusOK, 20*time.Millisecond)

	out := scrape(t, r)
	assert.Contains(t, out, `storydash_http_requests_total{method="GET",route="/api/charts/{chart}",status="200"} 2`)
	assert.Contains(t, out, `storydash_http_request_duration_seconds_count{method="GET",route="/api/charts/{chart}"} 2`)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.RecordRun(dataprocessing.ChartCategorySales, nil, time.Millisecond)

	assert.NotContains(t, scrape(t, b), `chart="category-sales"`)
}
