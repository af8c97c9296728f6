package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved, absolute application paths
type Paths struct {
	BaseDir     string
	DataDir     string
	ReportsDir  string
	LogFile     string
	TraceFile   string
	MetricsFile string
}

// resolvePaths anchors every relative path at Paths.BaseDir
func (c *Config) resolvePaths() error {
	if c.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Paths.BaseDir = wd
	}

	base, err := filepath.Abs(c.Paths.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory %s: %w", c.Paths.BaseDir, err)
	}
	c.Paths.BaseDir = base

	c.Data.Dir = resolve(base, c.Data.Dir)
	c.Report.OutputDir = resolve(base, c.Report.OutputDir)
	c.Logging.FilePath = resolve(base, c.Logging.FilePath)
	c.Telemetry.TraceFile = resolve(base, c.Telemetry.TraceFile)
	c.Telemetry.MetricsFile = resolve(base, c.Telemetry.MetricsFile)

	return nil
}

// resolve joins a relative path onto base; absolute and empty paths are
// returned unchanged
func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// GetPaths returns the resolved paths of the configuration
func (c *Config) GetPaths() *Paths {
	return &Paths{
		BaseDir:     c.Paths.BaseDir,
		DataDir:     c.Data.Dir,
		ReportsDir:  c.Report.OutputDir,
		LogFile:     c.Logging.FilePath,
		TraceFile:   c.Telemetry.TraceFile,
		MetricsFile: c.Telemetry.MetricsFile,
	}
}

// GetReportPath returns the path of a report file in the reports directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// EnsureDirectories creates the reports directory and the parents of the
// log, trace and metrics files
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.ReportsDir}
	for _, file := range []string{p.LogFile, p.TraceFile, p.MetricsFile} {
		if file != "" {
			directories = append(directories, filepath.Dir(file))
		}
	}

	logger := slog.Default()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved application paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("log_file", p.LogFile),
		slog.String("trace_file", p.TraceFile),
		slog.String("metrics_file", p.MetricsFile))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
