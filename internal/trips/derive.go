package trips

import "time"

// DeriveFields returns the month number and capitalized weekday name of a
// trip starting at start
func DeriveFields(start time.Time) (month int, weekday string) {
	return int(start.Month()), start.Weekday().String()
}
