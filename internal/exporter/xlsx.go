package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bikeshare/internal/config"
)

// Sheet names of the workbook export
const (
	SummarySheet = "Summary"
	TripsSheet   = "Trips"
)

// Sheet is one worksheet of a workbook
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
	// Width of every column; zero keeps the excelize default
	Width float64
}

// XLSXWriter writes workbooks; relative paths land in the reports directory
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteWorkbook writes sheets in order to a new workbook and returns the
// resolved path. The first sheet replaces the default "Sheet1".
func (w *XLSXWriter) WriteWorkbook(filePath string, sheets ...Sheet) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook needs at least one sheet")
	}

	fullPath := filePath
	if !filepath.IsAbs(filePath) && w.paths != nil {
		fullPath = w.paths.GetReportPath(filePath)
	}

	w.logger.Debug("Writing workbook",
		slog.String("full_path", fullPath),
		slog.Int("sheet_count", len(sheets)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return "", fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", sheet.Name, err)
		}

		if err := streamSheet(f, sheet, headerStyle); err != nil {
			return "", fmt.Errorf("failed to write sheet %s: %w", sheet.Name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

// streamSheet writes the header and rows of a sheet with a stream writer,
// which keeps large trip sheets out of the cell map
func streamSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	sw, err := f.NewStreamWriter(sheet.Name)
	if err != nil {
		return err
	}

	if sheet.Width > 0 && len(sheet.Headers) > 0 {
		if err := sw.SetColWidth(1, len(sheet.Headers), sheet.Width); err != nil {
			return err
		}
	}

	row := 1
	if len(sheet.Headers) > 0 {
		cells := make([]interface{}, len(sheet.Headers))
		for i, h := range sheet.Headers {
			cells[i] = excelize.Cell{StyleID: headerStyle, Value: h}
		}
		if err := sw.SetRow("A1", cells); err != nil {
			return err
		}
		row++
	}

	for _, record := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for i, v := range record {
			values[i] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
		row++
	}

	return sw.Flush()
}

// ReadSheet returns every row of a worksheet as strings
func ReadSheet(filePath, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
