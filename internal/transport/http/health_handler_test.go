package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storydash/internal/config"
	"storydash/internal/services"
)

func TestHealthHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	paths := &config.Paths{WorkingDir: dir, DataDir: dir, Orders: dir + "/missing.csv"}
	handler := NewHealthHandler(services.NewHealthService("v1.0.0-test", paths, logger), logger)

	tests := []struct {
		name          string
		handlerFunc   http.HandlerFunc
		checkResponse func(t *testing.T, body map[string]any)
	}{
		{
			name:        "health check reports missing sources",
			handlerFunc: handler.HealthCheck,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, services.StatusDegraded, body["status"])
				assert.Contains(t, body["missing_sources"], "orders")
			},
		},
		{
			name:        "liveness",
			handlerFunc: handler.LivenessCheck,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, services.StatusAlive, body["status"])
			},
		},
		{
			name:        "version",
			handlerFunc: handler.Version,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "v1.0.0-test", body["version"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handlerFunc(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.checkResponse(t, body)
		})
	}
}

func TestServeDashboard(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	paths := &config.Paths{WorkingDir: "/srv/app", DataDir: "/srv/app/data"}

	rec := httptest.NewRecorder()
	ServeDashboard(paths, 3000, logger)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	body := rec.Body.String()
	assert.Contains(t, body, config.AppName)
	assert.Contains(t, body, `value="3000"`)
	assert.Contains(t, body, `max="10000"`)
	assert.Contains(t, body, `step="1000"`)
	assert.Contains(t, body, "/srv/app/data")
}
