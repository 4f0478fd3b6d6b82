// Package config provides centralized configuration management for the MRT
// ridership extractor. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MRT_* for namespacing:
//
//	MRT_EXTRACTION_DATASET_VERSION=v2
//	MRT_EXTRACTION_WORKERS=4
//	MRT_LOGGING_LEVEL=info
//	MRT_PATHS_DATA_DIR=data
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	workbook := paths.GetWorkbookPath("2024-01.xlsx")
//	dataset := paths.GetDatasetPath()
//
// # Validation
//
// All configuration is validated at load time: the dataset version must name
// a known layout revision, worker counts are clamped to at least one, and
// logging settings are normalized to JSON with dual output.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
