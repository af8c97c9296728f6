package trips

import (
	"time"

	"bikeshare/pkg/contracts/domain"
)

// Table is the in-memory, column-oriented set of trips of one city.
// Row order is the order of the source file. A table is read-only once
// loaded.
type Table struct {
	city         domain.City
	source       string
	demographics bool

	ids           []string
	startTimes    []time.Time
	endTimes      []string
	durations     []float64
	startStations []string
	endStations   []string
	userTypes     []domain.Optional[string]
	genders       []domain.Optional[string]
	birthYears    []domain.Optional[int]

	// Derived from startTimes
	months   []int
	weekdays []string
}

// NewTable creates an empty table for city. Demographic columns are kept
// only when the city carries them.
func NewTable(city domain.City) *Table {
	return &Table{
		city:         city,
		demographics: city.HasDemographics(),
	}
}

// Append adds one record as the last row. The month and weekday are
// derived from its start time; the record's own derived fields are
// ignored.
func (t *Table) Append(r domain.TripRecord) {
	t.ids = append(t.ids, r.ID)
	t.startTimes = append(t.startTimes, r.StartTime)
	t.endTimes = append(t.endTimes, r.EndTime)
	t.durations = append(t.durations, r.Duration)
	t.startStations = append(t.startStations, r.StartStation)
	t.endStations = append(t.endStations, r.EndStation)
	t.userTypes = append(t.userTypes, r.UserType)
	if t.demographics {
		t.genders = append(t.genders, r.Gender)
		t.birthYears = append(t.birthYears, r.BirthYear)
	}
	month, weekday := DeriveFields(r.StartTime)
	t.months = append(t.months, month)
	t.weekdays = append(t.weekdays, weekday)
}

// City returns the city the table was loaded for
func (t *Table) City() domain.City { return t.city }

// Source returns the file the table was loaded from, if any
func (t *Table) Source() string { return t.source }

// HasDemographics reports whether gender and birth year columns exist
func (t *Table) HasDemographics() bool { return t.demographics }

// Len returns the number of rows
func (t *Table) Len() int { return len(t.startTimes) }

// Record returns row i with its derived fields
func (t *Table) Record(i int) domain.TripRecord {
	r := domain.TripRecord{
		ID:           t.ids[i],
		StartTime:    t.startTimes[i],
		EndTime:      t.endTimes[i],
		Duration:     t.durations[i],
		StartStation: t.startStations[i],
		EndStation:   t.endStations[i],
		UserType:     t.userTypes[i],
	}
	if t.demographics {
		r.Gender = t.genders[i]
		r.BirthYear = t.birthYears[i]
	}
	r.Month = t.months[i]
	r.DayOfWeek = t.weekdays[i]
	return r
}

// All returns a view over every row of the table
func (t *Table) All() *View {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return &View{table: t, rows: rows}
}

// View is a subset of a table's rows in source order. The table itself is
// shared, never copied or modified.
type View struct {
	table *Table
	rows  []int
}

// Table returns the underlying table
func (v *View) Table() *Table { return v.table }

// City returns the city of the underlying table
func (v *View) City() domain.City { return v.table.city }

// HasDemographics reports whether the underlying table has demographic columns
func (v *View) HasDemographics() bool { return v.table.demographics }

// Len returns the number of rows in the view
func (v *View) Len() int { return len(v.rows) }

// Record returns the i-th record of the view
func (v *View) Record(i int) domain.TripRecord {
	return v.table.Record(v.rows[i])
}

// Rows returns a copy of the table row indices of the view
func (v *View) Rows() []int {
	return append([]int(nil), v.rows...)
}
