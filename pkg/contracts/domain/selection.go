package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SelectAll is the sentinel that disables a month or day filter
const SelectAll = "all"

// months covered by the published datasets, index+1 is the month number
var months = []string{"january", "february", "march", "april", "may", "june"}

// days in calendar order starting on Monday
var days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// titleCase builds a Caser per call; a Caser must not be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Months returns the month selectors accepted besides "all"
func Months() []string {
	return append([]string(nil), months...)
}

// Days returns the day selectors accepted besides "all"
func Days() []string {
	return append([]string(nil), days...)
}

// ParseMonth normalizes a month selector ("all" or january..june)
func ParseMonth(s string) (string, bool) {
	return parseSelector(s, months)
}

// ParseDay normalizes a day selector ("all" or monday..sunday)
func ParseDay(s string) (string, bool) {
	return parseSelector(s, days)
}

func parseSelector(s string, domain []string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == SelectAll {
		return key, true
	}
	for _, v := range domain {
		if v == key {
			return key, true
		}
	}
	return "", false
}

// MonthName returns the title-cased English name of a month number.
// Numbers outside 1..12 are rendered as digits.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d", month)
	}
	names := []string{"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december"}
	return titleCase(names[month-1])
}

// Selection is an immutable month/day filter choice
type Selection struct {
	month string
	day   string
}

// NewSelection validates and normalizes month and day selectors
func NewSelection(month, day string) (Selection, error) {
	m, ok := ParseMonth(month)
	if !ok {
		return Selection{}, fmt.Errorf("invalid month selector %q", month)
	}
	d, ok := ParseDay(day)
	if !ok {
		return Selection{}, fmt.Errorf("invalid day selector %q", day)
	}
	return Selection{month: m, day: d}, nil
}

// AllRecords returns the selection that applies no filter
func AllRecords() Selection {
	return Selection{month: SelectAll, day: SelectAll}
}

// Month returns the normalized month selector
func (s Selection) Month() string {
	if s.month == "" {
		return SelectAll
	}
	return s.month
}

// Day returns the normalized day selector
func (s Selection) Day() string {
	if s.day == "" {
		return SelectAll
	}
	return s.day
}

// MonthNumber returns the month number the selection filters on.
// ok is false when every month is selected.
func (s Selection) MonthNumber() (month int, ok bool) {
	for i, m := range months {
		if m == s.month {
			return i + 1, true
		}
	}
	return 0, false
}

// Weekday returns the capitalized weekday name the selection filters on.
// ok is false when every day is selected.
func (s Selection) Weekday() (day string, ok bool) {
	if s.Day() == SelectAll {
		return "", false
	}
	return titleCase(s.day), true
}

// String renders the selection as "month=<m> day=<d>"
func (s Selection) String() string {
	return fmt.Sprintf("month=%s day=%s", s.Month(), s.Day())
}
