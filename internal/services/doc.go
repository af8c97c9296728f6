// Package services implements the analysis operations of the bikeshare
// tools on top of the trips, tripstats and rawdata packages.
//
// AnalysisService.Query validates a request, loads a fresh table for the
// city and applies the month/day selection. AnalysisService.Report runs
// the four statistic groups over the resulting view; each section carries
// its own result or error so one empty statistic never hides the others.
//
//	svc := services.NewAnalysisService(loader, tracer, metrics, logger)
//	q, err := svc.Query(ctx, services.QueryRequest{City: "chicago", Month: "march", Day: "all"})
//	if err != nil {
//	    return err
//	}
//	report := svc.Report(ctx, q)
//
// Spans are opened per query and per statistic; every log line of a query
// carries its query_id.
package services
