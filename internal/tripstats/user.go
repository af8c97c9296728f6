package tripstats

import (
	"cmp"
	"slices"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// NoDemographicsMessage explains the absent gender and birth year report
const NoDemographicsMessage = "Sorry, no gender and birth data available for %s."

// UserStats counts user types and, when city publishes demographics,
// genders and birth years. Missing values are left out of every count.
func UserStats(v Records, city domain.City) (domain.UserStats, error) {
	if v.Len() == 0 {
		return domain.UserStats{}, apperrors.NewEmptyResultError(StatUser)
	}

	userTypes := newCounter[string]()
	for i := 0; i < v.Len(); i++ {
		if userType, ok := v.Record(i).UserType.Get(); ok {
			userTypes.add(userType)
		}
	}

	stats := domain.UserStats{UserTypes: tally(userTypes)}
	if !city.HasDemographics() {
		return stats, nil
	}

	stats.Demographics = true
	genders := newCounter[string]()
	for i := 0; i < v.Len(); i++ {
		if gender, ok := v.Record(i).Gender.Get(); ok {
			genders.add(gender)
		}
	}
	stats.Genders = tally(genders)
	stats.BirthYear = birthYearStats(presentBirthYears(v))

	return stats, nil
}

// presentBirthYears returns the birth years that are not missing
func presentBirthYears(v Records) []int {
	years := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if year, ok := v.Record(i).BirthYear.Get(); ok {
			years = append(years, year)
		}
	}
	return years
}

// birthYearStats returns nil when there are no years
func birthYearStats(years []int) *domain.BirthYearStats {
	if len(years) == 0 {
		return nil
	}

	counts := newCounter[int]()
	for _, y := range years {
		counts.add(y)
	}

	return &domain.BirthYearStats{
		Earliest:   slices.Min(years),
		MostRecent: slices.Max(years),
		MostCommon: counts.mode(cmp.Compare[int]).Value,
	}
}
