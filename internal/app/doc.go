// Package app wires the bikeshare components for the commands.
//
// # Initialization Flow
//
//  1. Load configuration from defaults, the YAML file and BIKESHARE_* variables
//  2. Apply command line overrides and validate
//  3. Create the reports and log directories
//  4. Initialize logging and check the data directory
//  5. Initialize OpenTelemetry
//  6. Create the dataset loader and the analysis service
//
// # Usage
//
//	application, err := app.New(app.Options{ConfigFile: *configFile})
//	if err != nil {
//	    // report and exit
//	}
//	defer application.Shutdown(context.Background())
//
// All initialization errors are returned to the caller; the app does not
// call os.Exit.
package app
