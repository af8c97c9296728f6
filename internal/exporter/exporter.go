package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/services"
)

// Format selects the files written for a query
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatBoth Format = "both"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatXLSX, FormatBoth:
		return f, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("unknown report format %q", s), nil).
		WithContext("format", s)
}

func (f Format) csv() bool  { return f == FormatCSV || f == FormatBoth }
func (f Format) xlsx() bool { return f == FormatXLSX || f == FormatBoth }

// Result lists the files written for one query
type Result struct {
	QueryID string
	Name    string
	Files   []string
	Trips   int
	Elapsed time.Duration
}

// ReportExporter writes the summary and filtered trips of a query
type ReportExporter struct {
	paths  *config.Paths
	csv    *CSVWriter
	xlsx   *XLSXWriter
	logger *slog.Logger
}

// NewReportExporter creates an exporter writing into paths.ReportsDir
func NewReportExporter(paths *config.Paths, bom bool, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))
	return &ReportExporter{
		paths:  paths,
		csv:    NewCSVWriter(paths, bom, logger),
		xlsx:   NewXLSXWriter(paths, logger),
		logger: logger,
	}
}

// Export writes the files of format for q and its report. Write failures
// are EXPORT errors carrying the query id and file.
func (e *ReportExporter) Export(ctx context.Context, q *services.Query, report *services.Report, format Format) (*Result, error) {
	if q == nil || report == nil {
		return nil, services.ErrNoQuery
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	name := ReportName(q.City, q.Selection)
	demographics := q.View.HasDemographics()
	summary := SummaryRows(report)

	result := &Result{QueryID: q.ID, Name: name, Trips: q.View.Len()}

	if format.csv() {
		path, err := e.csv.WriteSimpleCSV(name+"_summary.csv", SummaryHeaders, summary)
		if err != nil {
			return nil, exportError(q.ID, name+"_summary.csv", err)
		}
		result.Files = append(result.Files, path)

		path, err = e.writeTripsCSV(ctx, name+"_trips.csv", q, demographics)
		if err != nil {
			return nil, exportError(q.ID, name+"_trips.csv", err)
		}
		result.Files = append(result.Files, path)
	}

	if format.xlsx() {
		trips := make([][]string, 0, q.View.Len())
		for i := 0; i < q.View.Len(); i++ {
			trips = append(trips, TripRow(q.View.Record(i), demographics))
		}
		path, err := e.xlsx.WriteWorkbook(name+".xlsx",
			Sheet{Name: SummarySheet, Headers: SummaryHeaders, Rows: summary, Width: 28},
			Sheet{Name: TripsSheet, Headers: TripHeaders(demographics), Rows: trips, Width: 20},
		)
		if err != nil {
			return nil, exportError(q.ID, name+".xlsx", err)
		}
		result.Files = append(result.Files, path)
	}

	result.Elapsed = time.Since(start)
	e.logger.InfoContext(ctx, "Report exported",
		slog.String("query_id", q.ID),
		slog.String("name", name),
		slog.Int("trips", result.Trips),
		slog.Int("files", len(result.Files)),
		slog.Duration("elapsed", result.Elapsed))

	return result, nil
}

func (e *ReportExporter) writeTripsCSV(ctx context.Context, path string, q *services.Query, demographics bool) (string, error) {
	sw, err := e.csv.CreateStreamWriter(path, TripHeaders(demographics))
	if err != nil {
		return "", err
	}

	for i := 0; i < q.View.Len(); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				sw.Close()
				return "", err
			}
		}
		if err := sw.WriteRecord(TripRow(q.View.Record(i), demographics)); err != nil {
			sw.Close()
			return "", err
		}
	}

	if err := sw.Close(); err != nil {
		return "", err
	}
	return sw.Path(), nil
}

func exportError(queryID, file string, err error) error {
	return apperrors.NewExportError("failed to write report", err).
		WithContext("query_id", queryID).
		WithContext("file", file)
}
