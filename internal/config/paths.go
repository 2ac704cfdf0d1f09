package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every resolved input path.
// This is the single source of truth for dataset locations.
type Paths struct {
	WorkingDir     string
	DataDir        string
	Orders         string
	Customers      string
	Municipalities string
	Products       string
	OrderItems     string
	Boundaries     string
}

// ResolvePaths resolves the configured sources against the data directory. A
// relative data directory is taken from the current working directory, the same
// place the dashboard has always looked for its datasets.
func ResolvePaths(src SourcesConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := src.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(wd, dataDir)
	}

	resolve := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dataDir, name)
	}

	return &Paths{
		WorkingDir:     wd,
		DataDir:        dataDir,
		Orders:         resolve(src.Orders),
		Customers:      resolve(src.Customers),
		Municipalities: resolve(src.Municipalities),
		Products:       resolve(src.Products),
		OrderItems:     resolve(src.OrderItems),
		Boundaries:     resolve(src.Boundaries),
	}, nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// MissingSources lists the dataset files that cannot be found, keyed by source name
func (p *Paths) MissingSources() map[string]string {
	missing := make(map[string]string)
	for name, path := range map[string]string{
		"orders":         p.Orders,
		"customers":      p.Customers,
		"municipalities": p.Municipalities,
		"products":       p.Products,
		"order_items":    p.OrderItems,
	} {
		if !FileExists(path) {
			missing[name] = path
		}
	}
	return missing
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.String("working_dir", p.WorkingDir),
		slog.String("data_dir", p.DataDir),
		slog.Group("sources",
			slog.String("orders", p.Orders),
			slog.String("customers", p.Customers),
			slog.String("municipalities", p.Municipalities),
			slog.String("products", p.Products),
			slog.String("order_items", p.OrderItems),
			slog.String("boundaries", p.Boundaries),
		))
}
