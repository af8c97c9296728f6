package tripstats

import (
	"fmt"
	"math"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// DurationStats returns the total and mean trip duration in seconds
func DurationStats(v Records) (domain.DurationStats, error) {
	n := v.Len()
	if n == 0 {
		return domain.DurationStats{}, apperrors.NewEmptyResultError(StatDuration)
	}

	var total float64
	for i := 0; i < n; i++ {
		total += v.Record(i).Duration
	}

	return domain.DurationStats{
		Records: n,
		Total:   total,
		Mean:    total / float64(n),
	}, nil
}

// SplitDuration breaks seconds into whole hours, minutes and seconds,
// truncating at each unit
func SplitDuration(seconds float64) (h, m, s int) {
	h = int(math.Floor(seconds / 3600))
	m = int(math.Floor(math.Mod(seconds, 3600) / 60))
	s = int(math.Floor(math.Mod(seconds, 60)))
	return h, m, s
}

// FormatDuration renders seconds as "H hours M minutes S seconds"
func FormatDuration(seconds float64) string {
	h, m, s := SplitDuration(seconds)
	return fmt.Sprintf("%d hours %d minutes %d seconds", h, m, s)
}
