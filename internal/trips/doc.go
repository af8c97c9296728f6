// Package trips loads city trip datasets and narrows them to a month/day
// selection.
//
// A Loader reads one CSV file per city into a column-oriented Table and
// derives the month and weekday columns from Start Time. Apply returns a
// View, a list of row indices sharing the table; the table is never
// modified by filtering, so several views over it can coexist.
//
//	table, err := loader.Load(ctx, domain.CityChicago)
//	if err != nil {
//	    return err // LOAD error naming file, line and column
//	}
//	view := trips.Apply(table, selection)
package trips
