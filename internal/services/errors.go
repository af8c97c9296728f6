package services

import "errors"

// Analysis service errors
var (
	// ErrNoQuery is returned when a report is requested without a query
	ErrNoQuery = errors.New("no query to report on")

	// ErrNoLoader is returned by a service built without a dataset loader
	ErrNoLoader = errors.New("no dataset loader configured")
)
