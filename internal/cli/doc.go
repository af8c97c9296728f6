// Package cli implements the interactive bikeshare session: it asks for a
// city, month and day, prints the four statistic sections and lets the
// user page through the raw trips before offering a restart.
package cli
