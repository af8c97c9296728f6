package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/validation"
)

// EnvPrefix namespaces every environment override, e.g. BIKESHARE_DATA_DIR
const EnvPrefix = "BIKESHARE"

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PathsConfig contains the directory every relative path is resolved against
type PathsConfig struct {
	// BaseDir defaults to the working directory
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// DataConfig locates the per-city trip datasets
type DataConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Chicago     string `yaml:"chicago" envconfig:"CHICAGO" validate:"required"`
	NewYorkCity string `yaml:"new_york_city" envconfig:"NEW_YORK_CITY" validate:"required"`
	Washington  string `yaml:"washington" envconfig:"WASHINGTON" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// ReportConfig controls the batch report exporter
type ReportConfig struct {
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=csv xlsx both"`
	Concurrency int    `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"min=1,max=16"`
	// BOMPrefix writes a UTF-8 BOM so spreadsheet tools detect the encoding
	BOMPrefix bool `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	TracingEnabled bool    `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string  `yaml:"trace_file" envconfig:"TRACE_FILE"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
	MetricsEnabled bool    `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	// MetricsFile receives the Prometheus text exposition on shutdown
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, then the YAML file (the
// given path, or the first well-known location that exists), then
// BIKESHARE_* environment variables. Relative paths are resolved and the
// result is validated.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Fields without a matching variable keep the file/default value
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// getConfigFilePath returns the first config file found in the usual places
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         DefaultDataDir,
			Chicago:     DefaultChicagoFile,
			NewYorkCity: DefaultNewYorkCityFile,
			Washington:  DefaultWashingtonFile,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Report: ReportConfig{
			OutputDir:   DefaultReportsDir,
			Format:      DefaultReportFormat,
			Concurrency: DefaultReportConcurrency,
			BOMPrefix:   true,
		},
		Telemetry: TelemetryConfig{
			TraceFile:   DefaultTraceFile,
			SampleRatio: 1.0,
			MetricsFile: DefaultMetricsFile,
		},
	}
}
