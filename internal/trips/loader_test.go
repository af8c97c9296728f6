package trips

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/shared/testutil"
	"bikeshare/pkg/contracts/domain"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteDatasets(t, dir)

	logger, _ := testutil.NewTestLogger(t)
	datasets := config.NewDatasets(dir, map[domain.City]string{
		domain.CityChicago:     "chicago.csv",
		domain.CityNewYorkCity: "new_york_city.csv",
		domain.CityWashington:  "washington.csv",
	})
	return NewLoader(datasets, logger), dir
}

func TestLoader_Load(t *testing.T) {
	loader, dir := newTestLoader(t)

	table, err := loader.Load(context.Background(), domain.CityChicago)
	require.NoError(t, err)

	assert.Equal(t, domain.CityChicago, table.City())
	assert.Equal(t, filepath.Join(dir, "chicago.csv"), table.Source())
	assert.True(t, table.HasDemographics())
	require.Equal(t, 5, table.Len())

	first := table.Record(0)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, time.Date(2017, 1, 2, 9, 7, 57, 0, time.UTC), first.StartTime)
	assert.Equal(t, "2017-01-02 09:17:57", first.EndTime)
	assert.Equal(t, 600.0, first.Duration)
	assert.Equal(t, "Canal St & Adams St", first.StartStation)
	assert.Equal(t, domain.Some("Subscriber"), first.UserType)
	assert.Equal(t, domain.Some("Male"), first.Gender)
	assert.Equal(t, domain.Some(1989), first.BirthYear)

	// Derived during load
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, "Monday", first.DayOfWeek)

	// Empty cells are missing values
	third := table.Record(2)
	assert.False(t, third.Gender.Valid)
	assert.False(t, third.BirthYear.Valid)

	// Source order is kept
	assert.Equal(t, "5", table.Record(4).ID)
}

func TestLoader_Load_Washington(t *testing.T) {
	loader, _ := newTestLoader(t)

	table, err := loader.Load(context.Background(), domain.CityWashington)
	require.NoError(t, err)

	assert.False(t, table.HasDemographics())
	require.Equal(t, 3, table.Len())
	assert.Equal(t, 489.066, table.Record(0).Duration)
	assert.False(t, table.Record(0).Gender.Valid)
}

func TestLoader_Load_Errors(t *testing.T) {
	loader, dir := newTestLoader(t)
	ctx := context.Background()

	t.Run("unknown city", func(t *testing.T) {
		_, err := loader.Load(ctx, domain.City("boston"))
		require.Error(t, err)
		assert.True(t, apperrors.IsLoadError(err))
	})

	t.Run("missing file", func(t *testing.T) {
		missing := NewLoader(config.NewDatasets(dir, map[domain.City]string{
			domain.CityChicago: "nope.csv",
		}), nil)
		_, err := missing.Load(ctx, domain.CityChicago)
		require.Error(t, err)
		assert.True(t, apperrors.IsLoadError(err))
	})

	t.Run("unconfigured city", func(t *testing.T) {
		partial := NewLoader(config.NewDatasets(dir, map[domain.City]string{
			domain.CityChicago: "chicago.csv",
		}), nil)
		_, err := partial.Load(ctx, domain.CityWashington)
		require.Error(t, err)
		assert.True(t, apperrors.IsLoadError(err))
	})

	t.Run("malformed value names file and line", func(t *testing.T) {
		bad := testutil.NewTripCSV(false).
			Trip("2017-05-01 07:10:00", 60, "A", "B", "Subscriber").
			Row(testutil.TripRow{Start: "2017-05-01 08:00:00", Duration: "abc", StartStation: "A", EndStation: "B"})
		path := bad.WriteFile(t, dir, "bad.csv")

		l := NewLoader(config.NewDatasets(dir, map[domain.City]string{
			domain.CityWashington: "bad.csv",
		}), nil)
		_, err := l.Load(ctx, domain.CityWashington)
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeLoad, appErr.Type)
		assert.Equal(t, path, appErr.Context["file"])
		assert.Equal(t, 3, appErr.Context["line"])
		assert.Equal(t, domain.ColumnTripDuration, appErr.Context["column"])
	})
	t.Run("dataset without csv extension", func(t *testing.T) {
		testutil.NewTripCSV(false).
			Trip("2017-05-01 07:10:00", 60, "A", "B", "Subscriber").
			WriteFile(t, dir, "washington.txt")

		l := NewLoader(config.NewDatasets(dir, map[domain.City]string{
			domain.CityWashington: "washington.txt",
		}), nil)
		_, err := l.Load(ctx, domain.CityWashington)
		require.Error(t, err)
		assert.True(t, apperrors.IsLoadError(err))
		assert.Contains(t, err.Error(), "not a CSV file")
	})
}

func TestLoader_Load_LogsError(t *testing.T) {
	dir := t.TempDir()
	testutil.NewTripCSV(false).
		Row(testutil.TripRow{Start: "yesterday", Duration: "60", StartStation: "A", EndStation: "B"}).
		WriteFile(t, dir, "washington.csv")

	logger, handler := testutil.NewTestLogger(t)
	l := NewLoader(config.NewDatasets(dir, map[domain.City]string{
		domain.CityWashington: "washington.csv",
	}), logger)

	_, err := l.Load(context.Background(), domain.CityWashington)
	require.Error(t, err)

	records := handler.GetRecordsByLevel(slog.LevelError)
	require.Len(t, records, 1)
	assert.Equal(t, "Failed to load dataset", records[0].Message)
	assert.Equal(t, err.Error(), records[0].Attrs["error"])
}

func TestRead(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		city    domain.City
		input   string
		wantLen int
		wantErr string
	}{
		{
			name:    "empty input",
			city:    domain.CityWashington,
			input:   "",
			wantErr: "empty dataset",
		},
		{
			name:    "header only",
			city:    domain.CityWashington,
			input:   ",Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n",
			wantLen: 0,
		},
		{
			name:    "missing required column",
			city:    domain.CityWashington,
			input:   "Start Time,Trip Duration,Start Station,End Station\n2017-01-01 00:00:00,1,A,B\n",
			wantErr: "missing required column",
		},
		{
			name:    "demographic columns required for chicago",
			city:    domain.CityChicago,
			input:   testutil.WashingtonSample().String(),
			wantErr: "missing required column",
		},
		{
			name:    "demographic columns ignored for washington",
			city:    domain.CityWashington,
			input:   testutil.ChicagoSample().String(),
			wantLen: 5,
		},
		{
			name:    "negative duration",
			city:    domain.CityWashington,
			input:   "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01 00:00:00,-5,A,B,Customer\n",
			wantErr: "non-negative",
		},
		{
			name:    "bad start time",
			city:    domain.CityWashington,
			input:   "Start Time,Trip Duration,Start Station,End Station,User Type\n01/01/2017,5,A,B,Customer\n",
			wantErr: "invalid start time",
		},
		{
			name:    "bad birth year",
			city:    domain.CityChicago,
			input:   "Start Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year\n2017-01-01 00:00:00,5,A,B,Customer,Male,old\n",
			wantErr: "invalid birth year",
		},
		{
			name:    "alternate timestamp layouts and bom",
			city:    domain.CityWashington,
			input:   "\ufeffStart Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01T10:00:00,5,A,B,\n2017-01-01 11:30,5,A,B,Customer\n",
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Read(ctx, strings.NewReader(tt.input), tt.city)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsLoadError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, table.Len())
		})
	}
}

func TestRead_MissingUserTypeIsNone(t *testing.T) {
	input := "Start Time,Trip Duration,Start Station,End Station,User Type\n2017-01-01T10:00:00,5,A,B,\n"
	table, err := Read(context.Background(), strings.NewReader(input), domain.CityWashington)
	require.NoError(t, err)

	rec := table.Record(0)
	assert.False(t, rec.UserType.Valid)
	assert.Equal(t, "", rec.ID)
	assert.Equal(t, "", rec.EndTime)
	assert.Equal(t, "Sunday", rec.DayOfWeek)
}

func TestRead_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader(testutil.WashingtonSample().String()), domain.CityWashington)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
