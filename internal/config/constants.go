package config

// Application constants
const (
	// Application Info
	AppName = "bikeshare"

	// File Paths (relative to paths.base_dir)
	DefaultDataDir     = "data"
	DefaultReportsDir  = "reports"
	DefaultLogFile     = "logs/bikeshare.log"
	DefaultTraceFile   = "logs/traces.json"
	DefaultMetricsFile = "logs/bikeshare.prom"

	// Dataset file names
	DefaultChicagoFile     = "chicago.csv"
	DefaultNewYorkCityFile = "new_york_city.csv"
	DefaultWashingtonFile  = "washington.csv"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "file"

	// Report Settings
	DefaultReportFormat      = "csv"
	DefaultReportConcurrency = 3
	MaxReportConcurrency     = 16
)
