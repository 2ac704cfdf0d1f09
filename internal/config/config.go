package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Tracing  TracingConfig  `yaml:"tracing" envconfig:"TRACING"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TracingConfig selects the OpenTelemetry span exporter
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=none stdout"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
}

// PipelineConfig holds the knobs of the data-preparation pipeline.
// The area-code range defaults to SaoPauloAreaCodeLow..SaoPauloAreaCodeHigh.
type PipelineConfig struct {
	RowLimit     int  `yaml:"row_limit" envconfig:"ROW_LIMIT" validate:"min=1,max=10000"`
	AreaCodeLow  int  `yaml:"area_code_low" envconfig:"AREA_CODE_LOW" validate:"min=0"`
	AreaCodeHigh int  `yaml:"area_code_high" envconfig:"AREA_CODE_HIGH" validate:"gtefield=AreaCodeLow"`
	Explain      bool `yaml:"explain" envconfig:"EXPLAIN"`
}

// SourcesConfig locates the input datasets. File names are relative to DataDir
// unless absolute.
type SourcesConfig struct {
	DataDir        string        `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	Orders         string        `yaml:"orders" envconfig:"ORDERS" validate:"required"`
	Customers      string        `yaml:"customers" envconfig:"CUSTOMERS" validate:"required"`
	Municipalities string        `yaml:"municipalities" envconfig:"MUNICIPALITIES" validate:"required"`
	Products       string        `yaml:"products" envconfig:"PRODUCTS" validate:"required"`
	OrderItems     string        `yaml:"order_items" envconfig:"ORDER_ITEMS" validate:"required"`
	Boundaries     string        `yaml:"boundaries" envconfig:"BOUNDARIES"`
	Columns        ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
}

// ColumnsConfig names the header of every column the pipeline reads
type ColumnsConfig struct {
	OrderID              string `yaml:"order_id" envconfig:"ORDER_ID" validate:"required"`
	OrderPurchased       string `yaml:"order_purchased" envconfig:"ORDER_PURCHASED" validate:"required"`
	OrderDelivered       string `yaml:"order_delivered" envconfig:"ORDER_DELIVERED" validate:"required"`
	CustomerID           string `yaml:"customer_id" envconfig:"CUSTOMER_ID" validate:"required"`
	CustomerCity         string `yaml:"customer_city" envconfig:"CUSTOMER_CITY" validate:"required"`
	CustomerAreaCode     string `yaml:"customer_area_code" envconfig:"CUSTOMER_AREA_CODE" validate:"required"`
	MunicipalityName     string `yaml:"municipality_name" envconfig:"MUNICIPALITY_NAME" validate:"required"`
	MunicipalityAreaCode string `yaml:"municipality_area_code" envconfig:"MUNICIPALITY_AREA_CODE" validate:"required"`
	MunicipalityIBGE     string `yaml:"municipality_ibge" envconfig:"MUNICIPALITY_IBGE" validate:"required"`
	ProductID            string `yaml:"product_id" envconfig:"PRODUCT_ID" validate:"required"`
	ProductCategory      string `yaml:"product_category" envconfig:"PRODUCT_CATEGORY" validate:"required"`
	ItemOrderID          string `yaml:"item_order_id" envconfig:"ITEM_ORDER_ID" validate:"required"`
	ItemProductID        string `yaml:"item_product_id" envconfig:"ITEM_PRODUCT_ID" validate:"required"`
	BoundaryCodeProperty string `yaml:"boundary_code_property" envconfig:"BOUNDARY_CODE_PROPERTY"`
}

// Load loads configuration with the precedence defaults < config file < environment.
// A .env file in the working directory is read into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep
// their current value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks every struct-tag constraint and reports all failing fields at once
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// ValidateRowLimit checks a per-request row limit against the accepted range
func ValidateRowLimit(rows int) error {
	if rows < MinRowLimit || rows > MaxRowLimit {
		return fmt.Errorf("row limit %d outside %d..%d", rows, MinRowLimit, MaxRowLimit)
	}
	return nil
}

var validate = validator.New()

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		return explicit
	}

	locations := []string{
		"storydash.yaml",
		"configs/storydash.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			SampleRatio: 1.0,
		},
		Pipeline: PipelineConfig{
			RowLimit:     DefaultRowLimit,
			AreaCodeLow:  SaoPauloAreaCodeLow,
			AreaCodeHigh: SaoPauloAreaCodeHigh,
		},
		Sources: SourcesConfig{
			DataDir:        ".",
			Orders:         DefaultOrdersFile,
			Customers:      DefaultCustomersFile,
			Municipalities: DefaultMunicipalitiesFile,
			Products:       DefaultProductsFile,
			OrderItems:     DefaultOrderItemsFile,
			Boundaries:     DefaultBoundariesFile,
			Columns:        DefaultColumns(),
		},
	}
}

// DefaultColumns returns the header names used by the Olist datasets and municipios.csv
func DefaultColumns() ColumnsConfig {
	return ColumnsConfig{
		OrderID:              "order_id",
		OrderPurchased:       "order_purchase_timestamp",
		OrderDelivered:       "order_delivered_customer_date",
		CustomerID:           "customer_id",
		CustomerCity:         "customer_city",
		CustomerAreaCode:     "customer_state",
		MunicipalityName:     "nome",
		MunicipalityAreaCode: "ddd",
		MunicipalityIBGE:     "codigo_ibge",
		ProductID:            "product_id",
		ProductCategory:      "product_category_name",
		ItemOrderID:          "order_id",
		ItemProductID:        "product_id",
		BoundaryCodeProperty: "id",
	}
}
