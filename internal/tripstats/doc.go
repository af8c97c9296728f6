// Package tripstats computes the descriptive statistics of a trip view:
// most frequent times of travel, most popular stations and trip, total
// and mean duration, and user type, gender and birth year breakdowns.
//
// Every function is a pure function of its input. Grouped values are
// visited in ascending key order and the first maximum wins, so results
// are the same on every run. An empty input yields an EMPTY_RESULT error
// naming the statistic.
package tripstats
