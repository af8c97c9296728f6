package exporter

import (
	"context"
	stderrors "errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/internal/validation"
)

// Analyzer runs queries and reports; *services.AnalysisService implements it
type Analyzer interface {
	Query(ctx context.Context, req services.QueryRequest) (*services.Query, error)
	Report(ctx context.Context, q *services.Query) *services.Report
}

// BatchItem is the outcome of one request of a batch
type BatchItem struct {
	Request services.QueryRequest
	Result  *Result
	Err     error
}

// ExportAll runs every request with at most concurrency in flight, each
// on its own freshly loaded table, and exports it. Items are returned in
// request order. A failing request does not stop the others; the returned
// error joins every item error.
func (e *ReportExporter) ExportAll(ctx context.Context, analyzer Analyzer, reqs []services.QueryRequest, format Format, concurrency int) ([]BatchItem, error) {
	if e.paths != nil {
		if err := validation.NewFileValidator(e.logger).ValidateOutputDirectory(e.paths.ReportsDir); err != nil {
			return nil, apperrors.NewExportError("reports directory is not writable", err).
				WithContext("directory", e.paths.ReportsDir)
		}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	items := make([]BatchItem, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		items[i].Request = req
		g.Go(func() error {
			// Each request gets its own query id
			qctx := infrastructure.ContextWithQueryID(gctx)
			items[i].Result, items[i].Err = e.exportOne(qctx, analyzer, req, format)
			// Only cancellation stops the batch
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return items, err
	}

	var errs []error
	for _, item := range items {
		if item.Err != nil {
			errs = append(errs, item.Err)
		}
	}

	e.logger.InfoContext(ctx, "Batch finished",
		slog.Int("requests", len(reqs)),
		slog.Int("failed", len(errs)),
		slog.Int("concurrency", concurrency))

	return items, stderrors.Join(errs...)
}

func (e *ReportExporter) exportOne(ctx context.Context, analyzer Analyzer, req services.QueryRequest, format Format) (*Result, error) {
	q, err := analyzer.Query(ctx, req)
	if err != nil {
		infrastructure.WithError(e.logger, err).ErrorContext(ctx, "Query failed",
			slog.String("city", req.City))
		return nil, err
	}
	return e.Export(ctx, q, analyzer.Report(ctx, q), format)
}
