package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/rawdata"
	"bikeshare/internal/trips"
	"bikeshare/internal/tripstats"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

// DatasetLoader loads the table of a city; *trips.Loader implements it
type DatasetLoader interface {
	Load(ctx context.Context, city domain.City) (*trips.Table, error)
}

// QueryRequest is the raw city/month/day selection of one query
type QueryRequest struct {
	City  string `json:"city" validate:"required,city"`
	Month string `json:"month" validate:"required,month"`
	Day   string `json:"day" validate:"required,weekday"`
}

// Query is a loaded and filtered dataset
type Query struct {
	ID        string
	City      domain.City
	Selection domain.Selection
	Table     *trips.Table
	View      *trips.View

	LoadDuration time.Duration
}

// Paginator returns a new raw record paginator over the query view
func (q *Query) Paginator() *rawdata.Paginator {
	return rawdata.New(q.View)
}

// Section is the outcome of one statistic group
type Section[T any] struct {
	Stats   T
	Err     error
	Elapsed time.Duration
}

// Empty reports whether the statistic had no records to work on
func (s Section[T]) Empty() bool {
	return apperrors.IsEmptyResult(s.Err)
}

// OK reports whether the statistic was computed
func (s Section[T]) OK() bool {
	return s.Err == nil
}

// Report holds every statistic group of a query
type Report struct {
	QueryID   string
	City      domain.City
	Selection domain.Selection
	Records   int

	Time     Section[domain.TimeStats]
	Station  Section[domain.StationStats]
	Duration Section[domain.DurationStats]
	User     Section[domain.UserStats]
}

// AnalysisService runs queries and reports
type AnalysisService struct {
	loader  DatasetLoader
	tracer  trace.Tracer
	metrics *infrastructure.QueryMetrics
	logger  *slog.Logger
}

// NewAnalysisService creates an analysis service. tracer and metrics may
// be nil.
func NewAnalysisService(loader DatasetLoader, tracer trace.Tracer, metrics *infrastructure.QueryMetrics, logger *slog.Logger) *AnalysisService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("bikeshare")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &AnalysisService{
		loader:  loader,
		tracer:  tracer,
		metrics: metrics,
		logger:  infrastructure.WithComponent(logger, "analysis"),
	}
}

// Query validates req, loads a fresh table for the city and applies the
// selection. The query id is taken from ctx or generated.
func (s *AnalysisService) Query(ctx context.Context, req QueryRequest) (*Query, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	city, _ := domain.ParseCity(req.City)
	sel, err := domain.NewSelection(req.Month, req.Day)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid selection", err)
	}

	ctx = infrastructure.EnsureQueryID(ctx)
	queryID := infrastructure.GetQueryID(ctx)

	ctx, span := s.tracer.Start(ctx, "bikeshare.query",
		trace.WithAttributes(
			attribute.String("query.id", queryID),
			attribute.String("city", string(city)),
			attribute.String("month", sel.Month()),
			attribute.String("day", sel.Day()),
		))
	defer span.End()

	s.logger.InfoContext(ctx, "Loading dataset",
		slog.String("city", string(city)),
		slog.String("selection", sel.String()))

	start := time.Now()
	table, err := s.loader.Load(ctx, city)
	if err != nil {
		s.metrics.RecordLoadFailure(ctx, string(city))
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	loadDuration := time.Since(start)
	infrastructure.AddSpanEvent(ctx, "dataset.loaded",
		attribute.Int("records", table.Len()),
		attribute.Int64("duration_ms", loadDuration.Milliseconds()))

	view := trips.Apply(table, sel)
	span.SetAttributes(
		attribute.Int("records.loaded", table.Len()),
		attribute.Int("records.selected", view.Len()))
	s.metrics.RecordQuery(ctx, string(city), table.Len())

	s.logger.InfoContext(ctx, "Query ready",
		slog.String("city", string(city)),
		slog.Int("loaded", table.Len()),
		slog.Int("selected", view.Len()),
		slog.Duration("load_duration", loadDuration))

	return &Query{
		ID:           queryID,
		City:         city,
		Selection:    sel,
		Table:        table,
		View:         view,
		LoadDuration: loadDuration,
	}, nil
}

// Report computes every statistic group over the query view. A nil query
// yields a report whose sections all carry ErrNoQuery.
func (s *AnalysisService) Report(ctx context.Context, q *Query) *Report {
	if q == nil {
		return &Report{
			Time:     Section[domain.TimeStats]{Err: ErrNoQuery},
			Station:  Section[domain.StationStats]{Err: ErrNoQuery},
			Duration: Section[domain.DurationStats]{Err: ErrNoQuery},
			User:     Section[domain.UserStats]{Err: ErrNoQuery},
		}
	}

	ctx = infrastructure.WithQueryID(ctx, q.ID)
	ctx, span := s.tracer.Start(ctx, "bikeshare.report",
		trace.WithAttributes(
			attribute.String("query.id", q.ID),
			attribute.String("city", string(q.City)),
			attribute.Int("records", q.View.Len()),
		))
	defer span.End()

	report := &Report{
		QueryID:   q.ID,
		City:      q.City,
		Selection: q.Selection,
		Records:   q.View.Len(),
	}

	report.Time = runSection(ctx, s, tripstats.StatTime, func() (domain.TimeStats, error) {
		return tripstats.TimeStats(q.View)
	})
	report.Station = runSection(ctx, s, tripstats.StatStation, func() (domain.StationStats, error) {
		return tripstats.StationStats(q.View)
	})
	report.Duration = runSection(ctx, s, tripstats.StatDuration, func() (domain.DurationStats, error) {
		return tripstats.DurationStats(q.View)
	})
	report.User = runSection(ctx, s, tripstats.StatUser, func() (domain.UserStats, error) {
		return tripstats.UserStats(q.View, q.City)
	})

	return report
}

// runSection times one statistic under its own span and records it
func runSection[T any](ctx context.Context, s *AnalysisService, name string, compute func() (T, error)) Section[T] {
	ctx, span := s.tracer.Start(ctx, "bikeshare.stat."+name)
	defer span.End()

	start := time.Now()
	stats, err := compute()
	elapsed := time.Since(start)

	empty := apperrors.IsEmptyResult(err)
	s.metrics.RecordStatistic(ctx, name, elapsed, empty)

	switch {
	case empty:
		span.SetAttributes(attribute.Bool("empty", true))
		s.logger.DebugContext(ctx, "Statistic has no records",
			slog.String("statistic", name))
	case err != nil:
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Statistic failed",
			slog.String("statistic", name),
			slog.String("error", err.Error()))
	default:
		s.logger.DebugContext(ctx, "Statistic computed",
			slog.String("statistic", name),
			slog.Duration("elapsed", elapsed))
	}

	return Section[T]{Stats: stats, Err: err, Elapsed: elapsed}
}
