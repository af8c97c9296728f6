package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"bikeshare/internal/config"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/internal/trips"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts"
)

// Options are the command line overrides applied on top of the loaded
// configuration
type Options struct {
	ConfigFile string
	DataDir    string
	ReportsDir string
	// LogOutput overrides the logging output (console, file, both)
	LogOutput string
}

// Application holds the wired components shared by the commands
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.QueryMetrics
	Analysis      *services.AnalysisService
}

// New loads the configuration and wires logging, telemetry and the
// analysis service
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	paths := cfg.GetPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetFullVersionString()))
	paths.LogPathResolution(logger)

	if err := validation.NewFileValidator(logger).ValidateInputDirectory(paths.DataDir); err != nil {
		return nil, fmt.Errorf("invalid data directory: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewQueryMetrics(otelProviders.Meter)
	if err != nil {
		otelProviders.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize query metrics: %w", err)
	}

	loader := trips.NewLoader(cfg.Datasets(), logger)

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Analysis:      services.NewAnalysisService(loader, otelProviders.Tracer, metrics, logger),
	}, nil
}

// applyOptions overlays the flag values and validates the result again
func applyOptions(cfg *config.Config, opts Options) error {
	if opts.DataDir != "" {
		dir, err := filepath.Abs(opts.DataDir)
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		cfg.Data.Dir = dir
	}
	if opts.ReportsDir != "" {
		dir, err := filepath.Abs(opts.ReportsDir)
		if err != nil {
			return fmt.Errorf("failed to resolve reports directory: %w", err)
		}
		cfg.Report.OutputDir = dir
	}
	if opts.LogOutput != "" {
		cfg.Logging.Output = opts.LogOutput
	}
	return cfg.Validate()
}

// Shutdown flushes telemetry and closes the log file
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.Logger.Info("Application stopped")
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}
