// Package exporter writes the annotated output workbook: valid rows under
// the data-type's canonical sheet names and errored rows under the
// Sample_Error and Results_Error sheets.
package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"eddcli/internal/config"
	"eddcli/internal/edd"
)

// Error sheet names are fixed regardless of data type.
const (
	SampleErrorSheet = "Sample_Error"
	ResultErrorSheet = "Results_Error"
)

// OutputPath derives the output workbook path from the input EDD path: the
// same directory and extension with "_validated_<DDMMYYYYHHmm>" inserted
// before the extension.
func OutputPath(eddPath string, now time.Time) string {
	ext := filepath.Ext(eddPath)
	base := strings.TrimSuffix(eddPath, ext)
	return fmt.Sprintf("%s_validated_%s%s", base, now.Format("020120061504"), ext)
}

// Write builds the four-sheet output workbook at path. Both tables are
// partitioned by their accumulated findings; the audit columns are appended
// after the table's own columns.
func Write(path string, dt config.DataTypeConfig, stations, results *edd.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	validStations, errorStations := stations.Partition()
	validResults, errorResults := results.Partition()

	if err := f.SetSheetName("Sheet1", dt.SampleSheet); err != nil {
		return fmt.Errorf("failed to name sample sheet: %w", err)
	}
	if err := writeSheet(f, dt.SampleSheet, stations.Columns, validStations); err != nil {
		return err
	}
	for _, sheet := range []struct {
		name string
		cols []string
		rows []*edd.Row
	}{
		{dt.ResultSheet, results.Columns, validResults},
		{SampleErrorSheet, stations.Columns, errorStations},
		{ResultErrorSheet, results.Columns, errorResults},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := writeSheet(f, sheet.name, sheet.cols, sheet.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("output workbook written",
		slog.String("file", path),
		slog.Int("valid_stations", len(validStations)),
		slog.Int("error_stations", len(errorStations)),
		slog.Int("valid_results", len(validResults)),
		slog.Int("error_results", len(errorResults)))
	return nil
}

// writeSheet writes one partition: the table columns plus the flattened
// "acao" and "comentario_correcao" audit columns.
func writeSheet(f *excelize.File, sheet string, columns []string, rows []*edd.Row) error {
	exportCols := exportColumns(columns)

	header := make([]interface{}, len(exportCols))
	for i, col := range exportCols {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	for i, row := range rows {
		values := make([]interface{}, len(exportCols))
		for j, col := range exportCols {
			switch col {
			case edd.ColAction:
				values[j] = row.Annotations.ActionCell()
			case edd.ColCorrectionComment:
				values[j] = row.Annotations.CommentCell()
			case edd.ColSampleName:
				if row.OriginalSampleName != "" {
					values[j] = row.OriginalSampleName
					break
				}
				values[j] = row.Get(col)
			default:
				values[j] = row.Get(col)
			}
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

// exportColumns appends the audit columns when the table does not already
// carry them, skipping unnamed columns from the source sheet.
func exportColumns(columns []string) []string {
	cols := make([]string, 0, len(columns)+2)
	hasAction, hasComment := false, false
	for _, c := range columns {
		if c == "" {
			continue
		}
		cols = append(cols, c)
		switch c {
		case edd.ColAction:
			hasAction = true
		case edd.ColCorrectionComment:
			hasComment = true
		}
	}
	if !hasAction {
		cols = append(cols, edd.ColAction)
	}
	if !hasComment {
		cols = append(cols, edd.ColCorrectionComment)
	}
	return cols
}
