package tripstats

import (
	"cmp"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// TimeStats returns the most common month, weekday and start hour
func TimeStats(v Records) (domain.TimeStats, error) {
	if v.Len() == 0 {
		return domain.TimeStats{}, apperrors.NewEmptyResultError(StatTime)
	}

	months := newCounter[int]()
	weekdays := newCounter[string]()
	hours := newCounter[int]()

	for i := 0; i < v.Len(); i++ {
		r := v.Record(i)
		months.add(r.Month)
		weekdays.add(r.DayOfWeek)
		hours.add(r.StartTime.Hour())
	}

	return domain.TimeStats{
		Month:   months.mode(cmp.Compare[int]),
		Weekday: weekdays.mode(cmp.Compare[string]),
		Hour:    hours.mode(cmp.Compare[int]),
	}, nil
}
