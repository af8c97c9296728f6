package tripstats

import "bikeshare/pkg/contracts/domain"

// Records is a read-only sequence of trips, such as a filtered view
type Records interface {
	Len() int
	Record(i int) domain.TripRecord
}

// Statistic names, used in empty-result errors and metrics
const (
	StatTime     = "time_stats"
	StatStation  = "station_stats"
	StatDuration = "duration_stats"
	StatUser     = "user_stats"
)
