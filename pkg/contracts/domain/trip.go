package domain

import (
	"strconv"
	"time"
)

// Source column names of the trip datasets
const (
	ColumnID           = ""
	ColumnStartTime    = "Start Time"
	ColumnEndTime      = "End Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
	ColumnMonth        = "month"
	ColumnDayOfWeek    = "day_of_week"
)

// TimestampLayout is the start/end time layout used by the datasets
const TimestampLayout = "2006-01-02 15:04:05"

// Optional holds a value that may be missing in the source data
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns a missing value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// TripRecord is one ride as loaded from a city dataset, including the
// calendar fields derived from StartTime.
type TripRecord struct {
	ID           string           `json:"id,omitempty"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      string           `json:"end_time,omitempty"`
	Duration     float64          `json:"trip_duration"`
	StartStation string           `json:"start_station"`
	EndStation   string           `json:"end_station"`
	UserType     Optional[string] `json:"user_type"`
	Gender       Optional[string] `json:"gender"`
	BirthYear    Optional[int]    `json:"birth_year"`

	// Derived
	Month     int    `json:"month"`
	DayOfWeek string `json:"day_of_week"`
}

// Field is a named, display-ready value of a record
type Field struct {
	Name  string
	Value string
}

// Fields returns every value of the record in source column order followed
// by the derived fields. Demographic columns are included only when the
// dataset carries them.
func (r TripRecord) Fields(demographics bool) []Field {
	fields := []Field{
		{Name: "ID", Value: r.ID},
		{Name: ColumnStartTime, Value: r.StartTime.Format(TimestampLayout)},
		{Name: ColumnEndTime, Value: r.EndTime},
		{Name: ColumnTripDuration, Value: strconv.FormatFloat(r.Duration, 'f', -1, 64)},
		{Name: ColumnStartStation, Value: r.StartStation},
		{Name: ColumnEndStation, Value: r.EndStation},
		{Name: ColumnUserType, Value: optionalString(r.UserType)},
	}
	if demographics {
		birthYear := ""
		if y, ok := r.BirthYear.Get(); ok {
			birthYear = strconv.Itoa(y)
		}
		fields = append(fields,
			Field{Name: ColumnGender, Value: optionalString(r.Gender)},
			Field{Name: ColumnBirthYear, Value: birthYear},
		)
	}
	return append(fields,
		Field{Name: ColumnMonth, Value: strconv.Itoa(r.Month)},
		Field{Name: ColumnDayOfWeek, Value: r.DayOfWeek},
	)
}

func optionalString(o Optional[string]) string {
	if v, ok := o.Get(); ok {
		return v
	}
	return ""
}
