package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/pkg/contracts/domain"
)

// TestResolvePaths tests that relative paths are anchored at the base dir
func TestResolvePaths(t *testing.T) {
	base := t.TempDir()

	cfg := Default()
	cfg.Paths.BaseDir = base
	cfg.Telemetry.TraceFile = "/var/log/bikeshare/traces.json"
	require.NoError(t, cfg.resolvePaths())

	assert.Equal(t, filepath.Join(base, "data"), cfg.Data.Dir)
	assert.Equal(t, filepath.Join(base, "reports"), cfg.Report.OutputDir)
	assert.Equal(t, filepath.Join(base, "logs", "bikeshare.log"), cfg.Logging.FilePath)
	assert.Equal(t, "/var/log/bikeshare/traces.json", cfg.Telemetry.TraceFile)
}

func TestResolvePaths_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	cfg := Default()
	require.NoError(t, cfg.resolvePaths())

	assert.Equal(t, wd, cfg.Paths.BaseDir)
	assert.True(t, filepath.IsAbs(cfg.Data.Dir))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"relative", "/srv", "data", "/srv/data"},
		{"nested relative", "/srv", "logs/app.log", "/srv/logs/app.log"},
		{"absolute", "/srv", "/tmp/data", "/tmp/data"},
		{"empty", "/srv", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolve(tt.base, tt.path))
		})
	}
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()

	cfg := Default()
	cfg.Paths.BaseDir = base
	require.NoError(t, cfg.resolvePaths())

	paths := cfg.GetPaths()
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{
		paths.ReportsDir,
		filepath.Dir(paths.LogFile),
		filepath.Dir(paths.TraceFile),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	assert.Equal(t, filepath.Join(base, "reports", "chicago_all_all_summary.csv"),
		paths.GetReportPath("chicago_all_all_summary.csv"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "chicago.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}

func TestNewDatasets(t *testing.T) {
	files := map[domain.City]string{
		domain.CityChicago:    "chicago.csv",
		domain.CityWashington: "/data/dc.csv",
	}
	ds := NewDatasets("/srv/data", files)

	// Mutating the source map must not leak into the mapping
	files[domain.CityChicago] = "other.csv"
	files[domain.CityNewYorkCity] = "nyc.csv"

	path, err := ds.Path(domain.CityChicago)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/chicago.csv", path)

	path, err = ds.Path(domain.CityWashington)
	require.NoError(t, err)
	assert.Equal(t, "/data/dc.csv", path)

	_, err = ds.Path(domain.CityNewYorkCity)
	assert.Error(t, err)

	assert.Equal(t, []domain.City{domain.CityChicago, domain.CityWashington}, ds.Cities())
}
