package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bikeshare/internal/app"
	"bikeshare/internal/exporter"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

type options struct {
	configFile  string
	dataDir     string
	outputDir   string
	cities      string
	month       string
	day         string
	format      string
	concurrency int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("tripreport", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "path to the YAML config file")
	fs.StringVar(&opts.dataDir, "data-dir", "", "directory holding the city datasets")
	fs.StringVar(&opts.outputDir, "out", "", "output directory for reports (defaults to report.output_dir)")
	fs.StringVar(&opts.cities, "cities", "all", "comma separated cities or \"all\"")
	fs.StringVar(&opts.month, "month", domain.SelectAll, "month filter, january..june or \"all\"")
	fs.StringVar(&opts.day, "day", domain.SelectAll, "day filter, monday..sunday or \"all\"")
	fs.StringVar(&opts.format, "format", "", "csv, xlsx or both (defaults to report.format)")
	fs.IntVar(&opts.concurrency, "concurrency", 0, "cities processed in parallel (defaults to report.concurrency)")
	err := fs.Parse(args)
	return opts, err
}

// parseCities expands "all" and validates every name
func parseCities(s string) ([]domain.City, error) {
	if strings.TrimSpace(strings.ToLower(s)) == domain.SelectAll {
		return domain.AllCities(), nil
	}

	var cities []domain.City
	seen := map[domain.City]bool{}
	for _, name := range strings.Split(s, ",") {
		city, ok := domain.ParseCity(name)
		if !ok {
			return nil, fmt.Errorf("%q is not a valid city", strings.TrimSpace(name))
		}
		if !seen[city] {
			seen[city] = true
			cities = append(cities, city)
		}
	}
	return cities, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cities, err := parseCities(opts.cities)
	if err != nil {
		return err
	}

	application, err := app.New(app.Options{
		ConfigFile: opts.configFile,
		DataDir:    opts.dataDir,
		ReportsDir: opts.outputDir,
	})
	if err != nil {
		return err
	}
	defer application.Shutdown(context.Background())

	cfg := application.Config
	if opts.format == "" {
		opts.format = cfg.Report.Format
	}
	format, err := exporter.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	concurrency := cfg.Report.Concurrency
	if opts.concurrency > 0 {
		concurrency = opts.concurrency
	}

	reqs := make([]services.QueryRequest, len(cities))
	for i, city := range cities {
		reqs[i] = services.QueryRequest{City: string(city), Month: opts.month, Day: opts.day}
	}

	exp := exporter.NewReportExporter(application.Paths, cfg.Report.BOMPrefix, application.Logger)
	items, err := exp.ExportAll(ctx, application.Analysis, reqs, format, concurrency)

	for _, item := range items {
		switch {
		case item.Err != nil:
			fmt.Fprintf(stdout, "%s: failed: %v\n", item.Request.City, item.Err)
		case item.Result != nil:
			fmt.Fprintf(stdout, "%s: %d trips\n", item.Request.City, item.Result.Trips)
			for _, f := range item.Result.Files {
				fmt.Fprintf(stdout, "  %s\n", f)
			}
		}
	}

	if err != nil {
		application.Logger.Error("Batch export failed", slog.String("error", err.Error()))
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tripreport: %v\n", err)
		stop()
		os.Exit(1)
	}
}
