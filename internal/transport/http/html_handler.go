package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"storydash/internal/config"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// pageData fills the dashboard page template
type pageData struct {
	Title       string
	WorkingDir  string
	DataDir     string
	MinRows     int
	MaxRows     int
	StepRows    int
	DefaultRows int
}

// ServeDashboard serves the dashboard page. The page draws its charts from the
// JSON endpoints.
func ServeDashboard(paths *config.Paths, defaultRows int, logger *slog.Logger) http.HandlerFunc {
	data := pageData{
		Title:       config.AppName,
		WorkingDir:  paths.WorkingDir,
		DataDir:     paths.DataDir,
		MinRows:     config.MinRowLimit,
		MaxRows:     config.MaxRowLimit,
		StepRows:    config.RowLimitStep,
		DefaultRows: defaultRows,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := indexTemplate.Execute(&buf, data); err != nil {
			logger.ErrorContext(r.Context(), "failed to render dashboard page", slog.String("error", err.Error()))
			http.Error(w, "Error rendering page", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		buf.WriteTo(w)
	}
}
