package config

import (
	"fmt"
	"path/filepath"

	"bikeshare/pkg/contracts/domain"
)

// Datasets is the immutable city → dataset file mapping handed to the loader
type Datasets struct {
	files map[domain.City]string
}

// NewDatasets builds a mapping; relative file names are joined onto dir.
// The map is copied so later changes by the caller have no effect.
func NewDatasets(dir string, files map[domain.City]string) Datasets {
	copied := make(map[domain.City]string, len(files))
	for city, file := range files {
		copied[city] = resolve(dir, file)
	}
	return Datasets{files: copied}
}

// Datasets returns the dataset mapping of the configuration
func (c *Config) Datasets() Datasets {
	return NewDatasets(c.Data.Dir, map[domain.City]string{
		domain.CityChicago:     c.Data.Chicago,
		domain.CityNewYorkCity: c.Data.NewYorkCity,
		domain.CityWashington:  c.Data.Washington,
	})
}

// Path returns the dataset file of a city
func (d Datasets) Path(city domain.City) (string, error) {
	path, ok := d.files[city]
	if !ok || path == "" {
		return "", fmt.Errorf("no dataset configured for city %q", city)
	}
	return filepath.Clean(path), nil
}

// Cities returns the configured cities in display order
func (d Datasets) Cities() []domain.City {
	var cities []domain.City
	for _, c := range domain.AllCities() {
		if _, ok := d.files[c]; ok {
			cities = append(cities, c)
		}
	}
	return cities
}
