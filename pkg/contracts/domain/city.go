package domain

import (
	"strings"
)

// City identifies one of the bikeshare systems with a published dataset
type City string

const (
	CityChicago     City = "chicago"
	CityNewYorkCity City = "new-york-city"
	CityWashington  City = "washington"
)

// AllCities returns the closed set of supported cities in display order
func AllCities() []City {
	return []City{CityChicago, CityNewYorkCity, CityWashington}
}

// ParseCity normalizes user input into a City.
// Both "new york city" and "new-york-city" are accepted.
func ParseCity(s string) (City, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(s)), "-")
	for _, c := range AllCities() {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// IsValid reports whether c is one of the supported cities
func (c City) IsValid() bool {
	for _, known := range AllCities() {
		if c == known {
			return true
		}
	}
	return false
}

// HasDemographics is the per-city capability flag for the Gender and
// Birth Year columns. Washington publishes neither.
func (c City) HasDemographics() bool {
	return c != CityWashington
}

// DisplayName returns the human readable city name
func (c City) DisplayName() string {
	switch c {
	case CityChicago:
		return "Chicago"
	case CityNewYorkCity:
		return "New York City"
	case CityWashington:
		return "Washington"
	default:
		return string(c)
	}
}

// String returns the city identifier
func (c City) String() string {
	return string(c)
}
