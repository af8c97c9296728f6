package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCity(t *testing.T) {
	tests := []struct {
		input string
		want  City
		ok    bool
	}{
		{"chicago", CityChicago, true},
		{"  Chicago ", CityChicago, true},
		{"new york city", CityNewYorkCity, true},
		{"New-York-City", CityNewYorkCity, true},
		{"WASHINGTON", CityWashington, true},
		{"boston", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCity(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCity_HasDemographics(t *testing.T) {
	assert.True(t, CityChicago.HasDemographics())
	assert.True(t, CityNewYorkCity.HasDemographics())
	assert.False(t, CityWashington.HasDemographics())
}

func TestCity_IsValid(t *testing.T) {
	for _, c := range AllCities() {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, City("new york city").IsValid())
	assert.False(t, City("paris").IsValid())
}

func TestNewSelection(t *testing.T) {
	tests := []struct {
		name        string
		month, day  string
		wantMonth   int
		monthOK     bool
		wantWeekday string
		dayOK       bool
		wantErr     bool
	}{
		{name: "no filter", month: "all", day: "all"},
		{name: "month only", month: "March", day: "all", wantMonth: 3, monthOK: true},
		{name: "day only", month: "all", day: " sunday", wantWeekday: "Sunday", dayOK: true},
		{name: "both", month: "june", day: "monday", wantMonth: 6, monthOK: true, wantWeekday: "Monday", dayOK: true},
		{name: "month outside dataset", month: "july", day: "all", wantErr: true},
		{name: "bad day", month: "all", day: "funday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := NewSelection(tt.month, tt.day)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			m, ok := sel.MonthNumber()
			assert.Equal(t, tt.monthOK, ok)
			assert.Equal(t, tt.wantMonth, m)

			d, ok := sel.Weekday()
			assert.Equal(t, tt.dayOK, ok)
			assert.Equal(t, tt.wantWeekday, d)
		})
	}
}

func TestSelection_ZeroValueSelectsAll(t *testing.T) {
	var sel Selection
	_, ok := sel.MonthNumber()
	assert.False(t, ok)
	_, ok = sel.Weekday()
	assert.False(t, ok)
	assert.Equal(t, "month=all day=all", sel.String())
	assert.Equal(t, AllRecords().String(), sel.String())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "June", MonthName(6))
	assert.Equal(t, "December", MonthName(12))
	assert.Equal(t, "13", MonthName(13))
}

func TestTripRecord_Fields(t *testing.T) {
	rec := TripRecord{
		ID:           "7",
		Duration:     489.066,
		StartStation: "A",
		EndStation:   "B",
		UserType:     Some("Subscriber"),
		Gender:       None[string](),
		BirthYear:    Some(1985),
		Month:        5,
		DayOfWeek:    "Friday",
	}

	withDemo := rec.Fields(true)
	withoutDemo := rec.Fields(false)
	assert.Len(t, withDemo, len(withoutDemo)+2)

	byName := map[string]string{}
	for _, f := range withDemo {
		byName[f.Name] = f.Value
	}
	assert.Equal(t, "489.066", byName[ColumnTripDuration])
	assert.Equal(t, "", byName[ColumnGender])
	assert.Equal(t, "1985", byName[ColumnBirthYear])
	assert.Equal(t, "5", byName[ColumnMonth])
	assert.Equal(t, "Friday", byName[ColumnDayOfWeek])

	last := withoutDemo[len(withoutDemo)-1]
	assert.Equal(t, ColumnDayOfWeek, last.Name)
}
