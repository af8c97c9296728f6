package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"bikeshare/internal/config"
	"bikeshare/internal/shared/testutil"
)

func TestOTelInitialization_Disabled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	providers, err := InitializeOTel(config.TelemetryConfig{}, logger)
	require.NoError(t, err)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.Registry)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	// Noop instruments are still usable
	metrics, err := NewQueryMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordQuery(context.Background(), "chicago", 10)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestOTelInitialization_Tracing(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	traceFile := filepath.Join(t.TempDir(), "traces", "traces.json")

	providers, err := InitializeOTel(config.TelemetryConfig{
		TracingEnabled: true,
		TraceFile:      traceFile,
		SampleRatio:    1.0,
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "bikeshare.query")
	assert.True(t, span.IsRecording())
	AddSpanEvent(ctx, "dataset.loaded", attribute.Int("records", 3))
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "bikeshare.query")
	assert.Contains(t, string(content), "dataset.loaded")
}

func TestOTelInitialization_Metrics(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	metricsFile := filepath.Join(t.TempDir(), "metrics", "bikeshare.prom")

	providers, err := InitializeOTel(config.TelemetryConfig{
		MetricsEnabled: true,
		MetricsFile:    metricsFile,
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, providers.Registry)

	metrics, err := NewQueryMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordQuery(ctx, "chicago", 42)
	metrics.RecordLoadFailure(ctx, "washington")
	metrics.RecordStatistic(ctx, "time_stats", 5*time.Millisecond, true)

	families, err := providers.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bikeshare_queries_total"])
	assert.True(t, names["bikeshare_records_loaded_total"])
	assert.True(t, names["bikeshare_empty_results_total"])

	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "bikeshare_load_failures_total")
	assert.Contains(t, string(content), `city="washington"`)
}

func TestOTelInitialization_BadTraceFile(t *testing.T) {
	_, err := InitializeOTel(config.TelemetryConfig{TracingEnabled: true}, slog.Default())
	assert.Error(t, err)
}

func TestQueryMetrics_Nil(t *testing.T) {
	var metrics *QueryMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordQuery(ctx, "chicago", 1)
		metrics.RecordLoadFailure(ctx, "chicago")
		metrics.RecordStatistic(ctx, "user_stats", time.Second, false)
	})
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		AddSpanEvent(ctx, "event")
		RecordError(ctx, errors.New("ignored"))
	})
}
