package tripstats

import (
	"cmp"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// StationStats returns the most common start station, end station and
// (start, end) combination
func StationStats(v Records) (domain.StationStats, error) {
	if v.Len() == 0 {
		return domain.StationStats{}, apperrors.NewEmptyResultError(StatStation)
	}

	starts := newCounter[string]()
	ends := newCounter[string]()
	pairs := newCounter[domain.StationPair]()

	for i := 0; i < v.Len(); i++ {
		r := v.Record(i)
		starts.add(r.StartStation)
		ends.add(r.EndStation)
		pairs.add(domain.StationPair{Start: r.StartStation, End: r.EndStation})
	}

	return domain.StationStats{
		Start: starts.mode(cmp.Compare[string]),
		End:   ends.mode(cmp.Compare[string]),
		Pair:  pairs.mode(comparePairs),
	}, nil
}
