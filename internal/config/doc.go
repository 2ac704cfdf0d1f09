// Package config provides centralized configuration management for the dashboard.
// It loads configuration from several sources, validates it and resolves the
// dataset paths the pipeline reads from.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML, storydash.yaml or $STORYDASH_CONFIG)
//	3. Default values (lowest priority)
//
// A .env file in the working directory is loaded into the environment before
// anything else.
//
// # Environment Variables
//
// All environment variables follow the pattern STORYDASH_*:
//
//	STORYDASH_SERVER_PORT=8501
//	STORYDASH_LOGGING_LEVEL=debug
//	STORYDASH_PIPELINE_ROW_LIMIT=5000
//	STORYDASH_SOURCES_DATA_DIR=/srv/olist
//
// # Validation
//
// Struct tags are checked with go-playground/validator. The row limit must lie in
// 1..10000 and the area-code range must not be inverted.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.ResolvePaths(cfg.Sources)
package config
