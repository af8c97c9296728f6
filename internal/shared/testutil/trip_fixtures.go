package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// TripRow is one row of a trip dataset fixture
type TripRow struct {
	ID           string
	Start        string
	End          string
	Duration     string
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
}

// TripCSV builds trip dataset files in the layout of the city datasets
type TripCSV struct {
	Demographics bool
	Rows         []TripRow
}

// NewTripCSV creates an empty fixture. Demographics adds the Gender and
// Birth Year columns.
func NewTripCSV(demographics bool) *TripCSV {
	return &TripCSV{Demographics: demographics}
}

// Trip appends a row starting at start ("2006-01-02 15:04:05") that lasts
// seconds. The end time is computed from both.
func (c *TripCSV) Trip(start string, seconds float64, from, to, userType string) *TripCSV {
	end := ""
	if t, err := time.Parse("2006-01-02 15:04:05", start); err == nil {
		end = t.Add(time.Duration(seconds * float64(time.Second))).Format("2006-01-02 15:04:05")
	}
	return c.Row(TripRow{
		ID:           strconv.Itoa(len(c.Rows) + 1),
		Start:        start,
		End:          end,
		Duration:     strconv.FormatFloat(seconds, 'f', -1, 64),
		StartStation: from,
		EndStation:   to,
		UserType:     userType,
	})
}

// Rider sets the demographics of the last row
func (c *TripCSV) Rider(gender, birthYear string) *TripCSV {
	if n := len(c.Rows); n > 0 {
		c.Rows[n-1].Gender = gender
		c.Rows[n-1].BirthYear = birthYear
	}
	return c
}

// Row appends a raw row
func (c *TripCSV) Row(r TripRow) *TripCSV {
	c.Rows = append(c.Rows, r)
	return c
}

// Header returns the header row of the fixture
func (c *TripCSV) Header() []string {
	header := []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}
	if c.Demographics {
		header = append(header, "Gender", "Birth Year")
	}
	return header
}

// Bytes renders the fixture as CSV
func (c *TripCSV) Bytes() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(c.Header())
	for _, r := range c.Rows {
		record := []string{r.ID, r.Start, r.End, r.Duration, r.StartStation, r.EndStation, r.UserType}
		if c.Demographics {
			record = append(record, r.Gender, r.BirthYear)
		}
		w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

// String renders the fixture as CSV
func (c *TripCSV) String() string {
	return string(c.Bytes())
}

// WriteFile writes the fixture to dir/name, creating dir, and returns the path
func (c *TripCSV) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("create fixture dir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, c.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// ChicagoSample is a small dataset with demographics spanning two months
// and several weekdays
func ChicagoSample() *TripCSV {
	return NewTripCSV(true).
		Trip("2017-01-02 09:07:57", 600, "Canal St & Adams St", "Clinton St & Madison St", "Subscriber").Rider("Male", "1989.0").
		Trip("2017-01-02 09:31:10", 420, "Canal St & Adams St", "Clinton St & Madison St", "Subscriber").Rider("Female", "1992.0").
		Trip("2017-01-03 17:05:00", 1800, "Streeter Dr & Grand Ave", "Lake Shore Dr & Monroe St", "Customer").Rider("", "").
		Trip("2017-03-06 17:45:12", 300, "Clinton St & Madison St", "Canal St & Adams St", "Subscriber").Rider("Male", "1992.0").
		Trip("2017-03-10 08:15:00", 961, "Canal St & Adams St", "Streeter Dr & Grand Ave", "Subscriber").Rider("Female", "1975.0")
}

// WashingtonSample is a small dataset without demographic columns
func WashingtonSample() *TripCSV {
	return NewTripCSV(false).
		Trip("2017-05-01 07:10:00", 489.066, "Columbus Circle / Union Station", "14th & V St NW", "Subscriber").
		Trip("2017-05-01 07:45:30", 1012.5, "14th & V St NW", "Columbus Circle / Union Station", "Registered").
		Trip("2017-05-05 18:00:00", 3661, "Lincoln Memorial", "Jefferson Memorial", "Customer")
}

// WriteDatasets writes the samples as chicago.csv, new_york_city.csv and
// washington.csv under dir. New York City reuses the Chicago sample.
func WriteDatasets(t *testing.T, dir string) {
	t.Helper()
	ChicagoSample().WriteFile(t, dir, "chicago.csv")
	ChicagoSample().WriteFile(t, dir, "new_york_city.csv")
	WashingtonSample().WriteFile(t, dir, "washington.csv")
}
