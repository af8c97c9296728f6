package domain

// Mode is the most common value of a grouping and how often it occurs
type Mode[T any] struct {
	Value T   `json:"value"`
	Count int `json:"count"`
}

// StationPair is an ordered (start, end) station combination
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Count is the number of records sharing a value
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimeStats reports the most frequent times of travel
type TimeStats struct {
	Month   Mode[int]    `json:"month"`
	Weekday Mode[string] `json:"weekday"`
	Hour    Mode[int]    `json:"hour"`
}

// StationStats reports the most popular stations and trip
type StationStats struct {
	Start Mode[string]      `json:"start"`
	End   Mode[string]      `json:"end"`
	Pair  Mode[StationPair] `json:"pair"`
}

// DurationStats reports total and mean trip duration in seconds
type DurationStats struct {
	Records int     `json:"records"`
	Total   float64 `json:"total_seconds"`
	Mean    float64 `json:"mean_seconds"`
}

// BirthYearStats reports the earliest, most recent and most common birth year
type BirthYearStats struct {
	Earliest   int `json:"earliest"`
	MostRecent int `json:"most_recent"`
	MostCommon int `json:"most_common"`
}

// UserStats reports user type counts and, where the city publishes them,
// gender counts and birth year statistics.
type UserStats struct {
	UserTypes []Count `json:"user_types"`

	// Demographics is false when the city has no gender/birth year columns;
	// Genders and BirthYear are then unset.
	Demographics bool            `json:"demographics"`
	Genders      []Count         `json:"genders,omitempty"`
	BirthYear    *BirthYearStats `json:"birth_year,omitempty"`
}
