// Package shared holds code used across the bikeshare packages that does
// not belong to any one of them.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler and NewTestLogger for asserting on log output
//   - TripCSV, a builder for trip dataset fixtures in the city CSV layout
//   - ChicagoSample, WashingtonSample and WriteDatasets with known statistics
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    dir := t.TempDir()
//	    testutil.WriteDatasets(t, dir)
//	    logger, handler := testutil.NewTestLogger(t)
//	    ...
//	    testutil.AssertNoErrors(t, handler)
//	}
//
// testutil imports no other bikeshare package.
package shared
