// Package exporter writes query reports to disk.
//
// CSVWriter is the low-level CSV writer with header, streaming and
// UTF-8 BOM support. XLSXWriter writes multi-sheet workbooks with excelize.
// ReportExporter combines them: for one query it writes
//
//	<city>_<month>_<day>_summary.csv   section,metric,value,count rows
//	<city>_<month>_<day>_trips.csv     the filtered records
//	<city>_<month>_<day>.xlsx          Summary and Trips sheets
//
// depending on the selected Format.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(cfg.GetPaths(), cfg.Report.BOMPrefix, logger)
//	result, err := exp.Export(ctx, query, report, exporter.FormatBoth)
package exporter
