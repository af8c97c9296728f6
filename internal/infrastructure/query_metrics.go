package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// QueryMetrics holds the instruments recorded by the analysis service.
// A nil *QueryMetrics records nothing.
type QueryMetrics struct {
	queries       metric.Int64Counter
	loadFailures  metric.Int64Counter
	recordsLoaded metric.Int64Counter
	emptyResults  metric.Int64Counter
	statDuration  metric.Float64Histogram
}

// NewQueryMetrics creates the query instruments on meter
func NewQueryMetrics(meter metric.Meter) (*QueryMetrics, error) {
	queries, err := meter.Int64Counter(
		"bikeshare_queries_total",
		metric.WithDescription("Total number of analysis queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("queries counter: %w", err)
	}

	loadFailures, err := meter.Int64Counter(
		"bikeshare_load_failures_total",
		metric.WithDescription("Total number of dataset load failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("load failures counter: %w", err)
	}

	recordsLoaded, err := meter.Int64Counter(
		"bikeshare_records_loaded_total",
		metric.WithDescription("Total number of trip records loaded"),
	)
	if err != nil {
		return nil, fmt.Errorf("records loaded counter: %w", err)
	}

	emptyResults, err := meter.Int64Counter(
		"bikeshare_empty_results_total",
		metric.WithDescription("Total number of statistics skipped on an empty view"),
	)
	if err != nil {
		return nil, fmt.Errorf("empty results counter: %w", err)
	}

	statDuration, err := meter.Float64Histogram(
		"bikeshare_stat_duration_seconds",
		metric.WithDescription("Statistic computation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("stat duration histogram: %w", err)
	}

	return &QueryMetrics{
		queries:       queries,
		loadFailures:  loadFailures,
		recordsLoaded: recordsLoaded,
		emptyResults:  emptyResults,
		statDuration:  statDuration,
	}, nil
}

// RecordQuery counts a query and the records it loaded
func (m *QueryMetrics) RecordQuery(ctx context.Context, city string, records int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("city", city))
	m.queries.Add(ctx, 1, attrs)
	m.recordsLoaded.Add(ctx, int64(records), attrs)
}

// RecordLoadFailure counts a failed dataset load
func (m *QueryMetrics) RecordLoadFailure(ctx context.Context, city string) {
	if m == nil {
		return
	}
	m.loadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("city", city)))
}

// RecordStatistic records the duration of one statistic, counting it as
// empty when the view had no records
func (m *QueryMetrics) RecordStatistic(ctx context.Context, statistic string, duration time.Duration, empty bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("statistic", statistic))
	m.statDuration.Record(ctx, duration.Seconds(), attrs)
	if empty {
		m.emptyResults.Add(ctx, 1, attrs)
	}
}
