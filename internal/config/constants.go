package config

import "time"

// Application constants
const (
	AppName    = "PCG Storytelling de Dados"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. STORYDASH_PIPELINE_ROW_LIMIT
	EnvPrefix = "STORYDASH"

	// Row limit applied to the orders source
	DefaultRowLimit = 5000
	MinRowLimit     = 1
	MaxRowLimit     = 10000
	RowLimitStep    = 1000

	// SaoPauloAreaCodeLow and SaoPauloAreaCodeHigh bound the dialing codes used to
	// approximate the municipalities of São Paulo state. This is not an
	// authoritative state boundary; keep it as is unless the product changes.
	SaoPauloAreaCodeLow  = 11
	SaoPauloAreaCodeHigh = 19

	// Rate Limiting
	DefaultRateLimit = 20 // requests per second
	DefaultBurstSize = 40

	// Default dataset locations, relative to the data directory
	DefaultOrdersFile         = "datasets/olist_orders_dataset.csv"
	DefaultCustomersFile      = "datasets/olist_customers_dataset.csv"
	DefaultMunicipalitiesFile = "coordcidades/municipios.csv"
	DefaultProductsFile       = "datasets/olist_products_dataset.csv"
	DefaultOrderItemsFile     = "datasets/olist_order_items_dataset.csv"
	DefaultBoundariesFile     = "geojson/geojs-35-mun.json"

	DefaultLogFile = "logs/storydash.log"

	DefaultRequestTimeout = 2 * time.Minute
)
