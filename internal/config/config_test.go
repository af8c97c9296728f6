package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file or env",
			env:  map[string]string{"BIKESHARE_PATHS_BASE_DIR": "/srv/bikeshare"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/bikeshare", cfg.Paths.BaseDir)
				assert.Equal(t, "/srv/bikeshare/data", cfg.Data.Dir)
				assert.Equal(t, "chicago.csv", cfg.Data.Chicago)
				assert.Equal(t, "new_york_city.csv", cfg.Data.NewYorkCity)
				assert.Equal(t, "washington.csv", cfg.Data.Washington)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "file", cfg.Logging.Output)
				assert.Equal(t, "/srv/bikeshare/logs/bikeshare.log", cfg.Logging.FilePath)

				assert.Equal(t, "/srv/bikeshare/reports", cfg.Report.OutputDir)
				assert.Equal(t, "csv", cfg.Report.Format)
				assert.Equal(t, 3, cfg.Report.Concurrency)

				assert.False(t, cfg.Telemetry.TracingEnabled)
				assert.False(t, cfg.Telemetry.MetricsEnabled)
			},
		},
		{
			name: "file overrides defaults",
			file: `
paths:
  base_dir: /opt/trips
data:
  dir: /mnt/datasets
  washington: dc.csv
logging:
  level: debug
  output: both
report:
  format: xlsx
  concurrency: 2
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/mnt/datasets", cfg.Data.Dir)
				assert.Equal(t, "dc.csv", cfg.Data.Washington)
				assert.Equal(t, "chicago.csv", cfg.Data.Chicago)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "xlsx", cfg.Report.Format)
				assert.Equal(t, 2, cfg.Report.Concurrency)
				assert.Equal(t, "/opt/trips/reports", cfg.Report.OutputDir)
			},
		},
		{
			name: "env overrides file",
			file: `
paths:
  base_dir: /opt/trips
logging:
  level: debug
`,
			env: map[string]string{
				"BIKESHARE_LOGGING_LEVEL":             "warn",
				"BIKESHARE_DATA_CHICAGO":              "chicago_2017.csv",
				"BIKESHARE_REPORT_CONCURRENCY":        "5",
				"BIKESHARE_TELEMETRY_METRICS_ENABLED": "true",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "chicago_2017.csv", cfg.Data.Chicago)
				assert.Equal(t, 5, cfg.Report.Concurrency)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"BIKESHARE_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "concurrency out of range",
			file:    "report:\n  concurrency: 0\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "logging: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_DiscoversConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"),
		[]byte("paths:\n  base_dir: "+dir+"\nlogging:\n  level: debug\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	assert.Equal(t, "configs/config.yaml", getConfigFilePath())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Data.Dir)
}

func TestLoad_ErrorTypes(t *testing.T) {
	t.Run("unreadable file is a config error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	})

	t.Run("invalid value is a validation error", func(t *testing.T) {
		t.Setenv("BIKESHARE_REPORT_FORMAT", "pdf")
		_, err := Load("")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
		assert.Contains(t, err.Error(), "report.format")
	})
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.resolvePaths())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Datasets(t *testing.T) {
	t.Setenv("BIKESHARE_PATHS_BASE_DIR", "/srv/bikeshare")
	t.Setenv("BIKESHARE_DATA_WASHINGTON", "/elsewhere/dc.csv")

	cfg, err := Load("")
	require.NoError(t, err)

	ds := cfg.Datasets()
	assert.Equal(t, domain.AllCities(), ds.Cities())

	path, err := ds.Path(domain.CityChicago)
	require.NoError(t, err)
	assert.Equal(t, "/srv/bikeshare/data/chicago.csv", path)

	path, err = ds.Path(domain.CityWashington)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/dc.csv", path)
}
