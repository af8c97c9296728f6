// Package config provides configuration management for the bikeshare tools.
//
// # Configuration Sources
//
// Configuration is assembled in three layers, later layers winning:
//
//  1. Default() values
//  2. A YAML file (-config flag, else config.yaml or configs/config.yaml)
//  3. Environment variables with the BIKESHARE_ prefix
//
// # Environment Variables
//
// Variable names follow the struct nesting:
//
//	BIKESHARE_DATA_DIR=/srv/bikeshare
//	BIKESHARE_DATA_WASHINGTON=washington_2017.csv
//	BIKESHARE_LOGGING_LEVEL=debug
//	BIKESHARE_REPORT_FORMAT=xlsx
//	BIKESHARE_TELEMETRY_METRICS_ENABLED=true
//
// # Paths
//
// Relative paths are resolved against paths.base_dir (the working
// directory when unset). Datasets() returns the immutable city to file
// mapping used by the trip loader.
package config
