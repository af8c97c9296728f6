package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/rawdata"
	"bikeshare/internal/shared/testutil"
	"bikeshare/internal/trips"
	"bikeshare/pkg/contracts/domain"
)

func newTestService(t *testing.T) (*AnalysisService, *testutil.BufferedSlogHandler) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteDatasets(t, dir)

	logger, handler := testutil.NewTestLogger(t)
	datasets := config.NewDatasets(dir, map[domain.City]string{
		domain.CityChicago:     "chicago.csv",
		domain.CityNewYorkCity: "new_york_city.csv",
		domain.CityWashington:  "washington.csv",
	})
	return NewAnalysisService(trips.NewLoader(datasets, logger), nil, nil, logger), handler
}

type failingLoader struct{ err error }

func (f failingLoader) Load(context.Context, domain.City) (*trips.Table, error) {
	return nil, f.err
}

func TestAnalysisService_Query(t *testing.T) {
	svc, handler := newTestService(t)

	q, err := svc.Query(context.Background(), QueryRequest{City: "Chicago", Month: "January", Day: "all"})
	require.NoError(t, err)

	assert.Equal(t, domain.CityChicago, q.City)
	assert.Equal(t, "january", q.Selection.Month())
	assert.Equal(t, 5, q.Table.Len())
	assert.Equal(t, 3, q.View.Len())
	assert.Len(t, q.ID, 36)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Query ready")
	testutil.AssertLogAttr(t, handler, "selected", int64(3))
	testutil.AssertNoErrors(t, handler)
}

func TestAnalysisService_Query_KeepsContextQueryID(t *testing.T) {
	svc, _ := newTestService(t)

	ctx := infrastructure.WithQueryID(context.Background(), "fixed-id")
	q, err := svc.Query(ctx, QueryRequest{City: "new york city", Month: "all", Day: "monday"})
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", q.ID)
	assert.Equal(t, domain.CityNewYorkCity, q.City)
	assert.Equal(t, 3, q.View.Len())
}

func TestAnalysisService_Query_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  QueryRequest
		want string
	}{
		{"unknown city", QueryRequest{City: "boston", Month: "all", Day: "all"}, "city"},
		{"unknown month", QueryRequest{City: "chicago", Month: "july", Day: "all"}, "month"},
		{"unknown day", QueryRequest{City: "chicago", Month: "all", Day: "someday"}, "day"},
		{"missing fields", QueryRequest{}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Query(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAnalysisService_Query_LoadError(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	loadErr := apperrors.NewLoadError("broken", nil)
	svc := NewAnalysisService(failingLoader{err: loadErr}, nil, nil, logger)

	_, err := svc.Query(context.Background(), QueryRequest{City: "chicago", Month: "all", Day: "all"})
	require.Error(t, err)
	assert.True(t, apperrors.IsLoadError(err))
}

func TestAnalysisService_Query_NoLoader(t *testing.T) {
	svc := NewAnalysisService(nil, nil, nil, nil)

	_, err := svc.Query(context.Background(), QueryRequest{City: "chicago", Month: "all", Day: "all"})
	assert.ErrorIs(t, err, ErrNoLoader)
}

func TestAnalysisService_Report(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	q, err := svc.Query(ctx, QueryRequest{City: "chicago", Month: "all", Day: "all"})
	require.NoError(t, err)

	report := svc.Report(ctx, q)
	assert.Equal(t, q.ID, report.QueryID)
	assert.Equal(t, 5, report.Records)

	require.True(t, report.Time.OK())
	assert.Equal(t, 1, report.Time.Stats.Month.Value)

	require.True(t, report.Station.OK())
	assert.Equal(t, "Canal St & Adams St", report.Station.Stats.Start.Value)

	require.True(t, report.Duration.OK())
	assert.InDelta(t, 4081.0, report.Duration.Stats.Total, 1e-9)

	require.True(t, report.User.OK())
	assert.True(t, report.User.Stats.Demographics)
}

func TestAnalysisService_Report_EmptyView(t *testing.T) {
	svc, handler := newTestService(t)
	ctx := context.Background()

	q, err := svc.Query(ctx, QueryRequest{City: "washington", Month: "january", Day: "all"})
	require.NoError(t, err)
	require.Equal(t, 0, q.View.Len())

	report := svc.Report(ctx, q)
	assert.True(t, report.Time.Empty())
	assert.True(t, report.Station.Empty())
	assert.True(t, report.Duration.Empty())
	assert.True(t, report.User.Empty())

	testutil.AssertNoErrors(t, handler)
	assert.True(t, handler.ContainsAttr("statistic", "duration_stats"))
}

func TestAnalysisService_Report_NilQuery(t *testing.T) {
	svc, _ := newTestService(t)

	report := svc.Report(context.Background(), nil)
	assert.True(t, errors.Is(report.Time.Err, ErrNoQuery))
	assert.True(t, errors.Is(report.User.Err, ErrNoQuery))
	assert.False(t, report.User.Empty())
}

func TestAnalysisService_WithMetrics(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDatasets(t, dir)
	logger, _ := testutil.NewTestLogger(t)

	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{MetricsEnabled: true, MetricsFile: dir + "/m.prom"}, logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.NewQueryMetrics(providers.Meter)
	require.NoError(t, err)

	datasets := config.NewDatasets(dir, map[domain.City]string{domain.CityWashington: "washington.csv"})
	svc := NewAnalysisService(trips.NewLoader(datasets, logger), providers.Tracer, metrics, logger)

	q, err := svc.Query(context.Background(), QueryRequest{City: "washington", Month: "may", Day: "all"})
	require.NoError(t, err)
	svc.Report(context.Background(), q)

	families, err := providers.Registry.Gather()
	require.NoError(t, err)

	var loaded float64
	for _, f := range families {
		if f.GetName() == "bikeshare_records_loaded_total" {
			for _, m := range f.GetMetric() {
				loaded += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 3.0, loaded)
}

func TestQuery_Paginator(t *testing.T) {
	svc, _ := newTestService(t)

	q, err := svc.Query(context.Background(), QueryRequest{City: "washington", Month: "all", Day: "all"})
	require.NoError(t, err)

	p := q.Paginator()
	assert.Equal(t, rawdata.StateIdle, p.State())
	assert.Equal(t, 3, p.Remaining())
}
