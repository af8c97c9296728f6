package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"bikeshare/internal/services"
	"bikeshare/internal/tripstats"
	"bikeshare/pkg/contracts/domain"
)

// SummaryHeaders are the columns of the summary file and sheet
var SummaryHeaders = []string{"section", "metric", "value", "count"}

// Section names of the summary rows
const (
	SectionQuery    = "query"
	SectionTime     = "time"
	SectionStation  = "station"
	SectionDuration = "duration"
	SectionUser     = "user"
)

// ReportName returns the base file name of a query's exports,
// e.g. "new_york_city_march_all"
func ReportName(city domain.City, sel domain.Selection) string {
	return fmt.Sprintf("%s_%s_%s", strings.ReplaceAll(string(city), "-", "_"), sel.Month(), sel.Day())
}

// SummaryRows flattens a report into section/metric/value/count rows.
// A section that could not be computed becomes a single row giving the
// reason.
func SummaryRows(r *services.Report) [][]string {
	rows := [][]string{
		{SectionQuery, "query_id", r.QueryID, ""},
		{SectionQuery, "city", r.City.DisplayName(), ""},
		{SectionQuery, "month", r.Selection.Month(), ""},
		{SectionQuery, "day", r.Selection.Day(), ""},
		{SectionQuery, "records", formatInt(r.Records), ""},
	}

	rows = appendSection(rows, SectionTime, r.Time.Err, func() [][]string {
		s := r.Time.Stats
		return [][]string{
			{SectionTime, "most_common_month", domain.MonthName(s.Month.Value), formatInt(s.Month.Count)},
			{SectionTime, "most_common_weekday", s.Weekday.Value, formatInt(s.Weekday.Count)},
			{SectionTime, "most_common_start_hour", formatInt(s.Hour.Value), formatInt(s.Hour.Count)},
		}
	})

	rows = appendSection(rows, SectionStation, r.Station.Err, func() [][]string {
		s := r.Station.Stats
		return [][]string{
			{SectionStation, "most_common_start_station", s.Start.Value, formatInt(s.Start.Count)},
			{SectionStation, "most_common_end_station", s.End.Value, formatInt(s.End.Count)},
			{SectionStation, "most_common_trip", s.Pair.Value.Start + " -> " + s.Pair.Value.End, formatInt(s.Pair.Count)},
		}
	})

	rows = appendSection(rows, SectionDuration, r.Duration.Err, func() [][]string {
		s := r.Duration.Stats
		return [][]string{
			{SectionDuration, "total_seconds", formatFloat(s.Total), formatInt(s.Records)},
			{SectionDuration, "total", tripstats.FormatDuration(s.Total), ""},
			{SectionDuration, "mean_seconds", formatFloat(s.Mean), formatInt(s.Records)},
			{SectionDuration, "mean", tripstats.FormatDuration(s.Mean), ""},
		}
	})

	rows = appendSection(rows, SectionUser, r.User.Err, func() [][]string {
		return userRows(r.City, r.User.Stats)
	})

	return rows
}

func appendSection(rows [][]string, section string, err error, build func() [][]string) [][]string {
	if err != nil {
		return append(rows, []string{section, "no_data", err.Error(), ""})
	}
	return append(rows, build()...)
}

func userRows(city domain.City, s domain.UserStats) [][]string {
	var rows [][]string
	for _, c := range s.UserTypes {
		rows = append(rows, []string{SectionUser, "user_type", c.Value, formatInt(c.Count)})
	}

	rows = append(rows, []string{SectionUser, "demographics", formatBool(s.Demographics), ""})
	if !s.Demographics {
		return append(rows, []string{SectionUser, "note", fmt.Sprintf(tripstats.NoDemographicsMessage, city.DisplayName()), ""})
	}

	for _, c := range s.Genders {
		rows = append(rows, []string{SectionUser, "gender", c.Value, formatInt(c.Count)})
	}
	if s.BirthYear == nil {
		return append(rows, []string{SectionUser, "birth_year", "no birth year data", ""})
	}
	return append(rows,
		[]string{SectionUser, "earliest_birth_year", strconv.Itoa(s.BirthYear.Earliest), ""},
		[]string{SectionUser, "most_recent_birth_year", strconv.Itoa(s.BirthYear.MostRecent), ""},
		[]string{SectionUser, "most_common_birth_year", strconv.Itoa(s.BirthYear.MostCommon), ""},
	)
}

// TripHeaders returns the trip file columns: the source columns followed
// by the derived month and day_of_week
func TripHeaders(demographics bool) []string {
	fields := domain.TripRecord{}.Fields(demographics)
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name
	}
	return headers
}

// TripRow returns the values of a record in TripHeaders order
func TripRow(r domain.TripRecord, demographics bool) []string {
	fields := r.Fields(demographics)
	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = f.Value
	}
	return row
}
