package trips

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/validation"
	"bikeshare/pkg/contracts/domain"
)

// startTimeLayouts are tried in order when parsing Start Time
var startTimeLayouts = []string{
	domain.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ctxCheckInterval is how many rows are read between context checks
const ctxCheckInterval = 4096

// Loader reads city datasets into tables
type Loader struct {
	datasets config.Datasets
	files    *validation.FileValidator
	logger   *slog.Logger
}

// NewLoader creates a loader over the given dataset mapping
func NewLoader(datasets config.Datasets, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		datasets: datasets,
		files:    validation.NewFileValidator(logger),
		logger:   logger.With("component", "trips.loader"),
	}
}

// Load reads the dataset of city, derives the calendar fields and returns
// a fresh table. Every failure is a LOAD error.
func (l *Loader) Load(ctx context.Context, city domain.City) (*Table, error) {
	if !city.IsValid() {
		return nil, apperrors.NewLoadError("unknown city", nil).
			WithContext("city", string(city))
	}

	path, err := l.datasets.Path(city)
	if err != nil {
		return nil, apperrors.NewLoadError("dataset not configured", err).
			WithContext("city", string(city))
	}
	if err := l.files.ValidateCSVFile(path); err != nil {
		return nil, apperrors.NewLoadError("dataset not readable", err).
			WithContext("city", string(city)).
			WithContext("file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadError("failed to open dataset", err).
			WithContext("file", path)
	}
	defer file.Close()

	start := time.Now()
	table, err := Read(ctx, file, city)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("file", path)
		}
		infrastructure.WithError(l.logger, err).ErrorContext(ctx, "Failed to load dataset",
			slog.String("city", string(city)),
			slog.String("file", path))
		return nil, err
	}
	table.source = path

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("city", string(city)),
		slog.String("file", path),
		slog.Int("records", table.Len()),
		slog.Duration("duration", time.Since(start)))

	return table, nil
}

// Read parses a trip CSV with a header row from r and derives the
// calendar fields
func Read(ctx context.Context, r io.Reader, city domain.City) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewLoadError("empty dataset", nil).WithContext("line", 1)
	}
	if err != nil {
		return nil, loadError("failed to read header", err, 1, "")
	}

	cols, err := mapColumns(header, city.HasDemographics())
	if err != nil {
		return nil, err
	}

	table := NewTable(city)
	for row := 0; ; row++ {
		if row%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.NewLoadError("load cancelled", err)
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, loadError("malformed CSV row", err, line, "")
		}
		line, _ := reader.FieldPos(0)

		trip, err := cols.parse(record, line)
		if err != nil {
			return nil, err
		}
		table.Append(trip)
	}

	return table, nil
}

// columns holds the record index of every known header; -1 when absent
type columns struct {
	id, startTime, endTime, duration   int
	startStation, endStation, userType int
	gender, birthYear                  int
	demographics                       bool
}

func mapColumns(header []string, demographics bool) (*columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	lookup := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	cols := &columns{
		id:           lookup(domain.ColumnID),
		startTime:    lookup(domain.ColumnStartTime),
		endTime:      lookup(domain.ColumnEndTime),
		duration:     lookup(domain.ColumnTripDuration),
		startStation: lookup(domain.ColumnStartStation),
		endStation:   lookup(domain.ColumnEndStation),
		userType:     lookup(domain.ColumnUserType),
		gender:       -1,
		birthYear:    -1,
		demographics: demographics,
	}

	required := map[string]int{
		domain.ColumnStartTime:    cols.startTime,
		domain.ColumnTripDuration: cols.duration,
		domain.ColumnStartStation: cols.startStation,
		domain.ColumnEndStation:   cols.endStation,
		domain.ColumnUserType:     cols.userType,
	}
	if demographics {
		cols.gender = lookup(domain.ColumnGender)
		cols.birthYear = lookup(domain.ColumnBirthYear)
		required[domain.ColumnGender] = cols.gender
		required[domain.ColumnBirthYear] = cols.birthYear
	}

	for _, name := range requiredOrder {
		if i, ok := required[name]; ok && i < 0 {
			return nil, loadError("missing required column", nil, 1, name)
		}
	}

	return cols, nil
}

// requiredOrder fixes the order in which missing columns are reported
var requiredOrder = []string{
	domain.ColumnStartTime,
	domain.ColumnTripDuration,
	domain.ColumnStartStation,
	domain.ColumnEndStation,
	domain.ColumnUserType,
	domain.ColumnGender,
	domain.ColumnBirthYear,
}

func (c *columns) parse(record []string, line int) (domain.TripRecord, error) {
	var trip domain.TripRecord

	startText := cell(record, c.startTime)
	start, err := parseStartTime(startText)
	if err != nil {
		return trip, loadError("invalid start time", err, line, domain.ColumnStartTime)
	}
	trip.StartTime = start

	duration, err := strconv.ParseFloat(cell(record, c.duration), 64)
	if err != nil {
		return trip, loadError("invalid trip duration", err, line, domain.ColumnTripDuration)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return trip, loadError("trip duration must be a non-negative number", nil, line, domain.ColumnTripDuration)
	}
	trip.Duration = duration

	trip.ID = cell(record, c.id)
	trip.EndTime = cell(record, c.endTime)
	trip.StartStation = cell(record, c.startStation)
	trip.EndStation = cell(record, c.endStation)
	trip.UserType = optionalText(cell(record, c.userType))

	if c.demographics {
		trip.Gender = optionalText(cell(record, c.gender))

		year, err := parseBirthYear(cell(record, c.birthYear))
		if err != nil {
			return trip, loadError("invalid birth year", err, line, domain.ColumnBirthYear)
		}
		trip.BirthYear = year
	}

	return trip, nil
}

// cell returns the trimmed value at i, or "" when the column is absent or
// the row is short
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func optionalText(s string) domain.Optional[string] {
	if s == "" {
		return domain.None[string]()
	}
	return domain.Some(s)
}

func parseStartTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	var firstErr error
	for _, layout := range startTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// parseBirthYear accepts "1992" and "1992.0"; empty is missing
func parseBirthYear(s string) (domain.Optional[int], error) {
	if s == "" {
		return domain.None[int](), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.None[int](), err
	}
	if math.IsNaN(f) {
		return domain.None[int](), nil
	}
	if math.IsInf(f, 0) {
		return domain.None[int](), fmt.Errorf("out of range")
	}
	return domain.Some(int(f)), nil
}

func loadError(msg string, cause error, line int, column string) *apperrors.AppError {
	err := apperrors.NewLoadError(msg, cause).WithContext("line", line)
	if column != "" {
		err.WithContext("column", column)
	}
	return err
}
