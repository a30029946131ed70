// Package loader reads the laboratory's EDD workbook into the pipeline's
// in-memory tables, renaming every column to its canonical name using the
// De-Para "Columns" sheet before any validation runs.
package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"eddcli/internal/config"
	"eddcli/internal/edd"
	"eddcli/internal/mapping"
)

// stationColumns are the canonical columns every station table must carry
// after the rename pass. quality_code is additionally required for water.
var stationColumns = []string{
	edd.ColSampleName,
	edd.ColStationName,
	edd.ColMatrix,
	edd.ColSampleType,
	edd.ColLaboratory,
	edd.ColPeriodicity,
	edd.ColMonitoringRound,
	edd.ColSampleDate,
	edd.ColSampleTime,
	edd.ColSampleID,
	edd.ColComment,
}

// resultColumns are the canonical columns every result table must carry.
var resultColumns = []string{
	edd.ColParameterOrg,
	edd.ColParameterHGA,
	edd.ColParameterGroup,
	edd.ColUnitOrg,
	edd.ColUnitHGA,
	edd.ColResultValue,
	edd.ColResultNumHGA,
	edd.ColResultTxtHGA,
	edd.ColAnalysisDate,
	edd.ColAnalysisTime,
	edd.ColComment,
}

// LoadEDD reads the sample and result sheets selected by the data type and
// applies the De-Para column renames. Each station row keeps an immutable
// copy of its original sample_name for the export.
func LoadEDD(path string, dt config.DataTypeConfig, wb *mapping.Workbook) (stations, results *edd.Table, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open EDD file: %w", err)
	}
	defer f.Close()

	stations, err = loadSheet(f, path, dt.SampleSheet, wb.SampleRenames)
	if err != nil {
		return nil, nil, err
	}
	results, err = loadSheet(f, path, dt.ResultSheet, wb.ResultRenames)
	if err != nil {
		return nil, nil, err
	}

	required := stationColumns
	if dt.Type == config.DataTypeWater {
		required = append(append([]string{}, stationColumns...), edd.ColQualityCode)
	}
	if err := requireColumns(stations, dt.SampleSheet, required); err != nil {
		return nil, nil, err
	}
	if err := requireColumns(results, dt.ResultSheet, resultColumns); err != nil {
		return nil, nil, err
	}

	for _, row := range stations.Rows {
		row.OriginalSampleName = row.Get(edd.ColSampleName)
	}

	slog.Info("EDD workbook loaded",
		slog.String("file", path),
		slog.String("sample_sheet", dt.SampleSheet),
		slog.String("result_sheet", dt.ResultSheet),
		slog.Int("station_rows", len(stations.Rows)),
		slog.Int("result_rows", len(results.Rows)))

	return stations, results, nil
}

// loadSheet reads one sheet into a Table, renaming headers via renames.
func loadSheet(f *excelize.File, path, sheet string, renames map[string]string) (*edd.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &edd.MissingSheetError{File: path, Sheet: sheet}
	}
	if len(rows) == 0 {
		return &edd.Table{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if canonical, ok := renames[h]; ok {
			h = canonical
		}
		headers[i] = h
	}

	table := &edd.Table{Columns: headers}
	for _, raw := range rows[1:] {
		cells := make(map[string]string, len(headers))
		for i, col := range headers {
			if col == "" {
				continue
			}
			if i < len(raw) {
				cells[col] = strings.TrimSpace(raw[i])
			} else {
				cells[col] = ""
			}
		}
		table.Rows = append(table.Rows, edd.NewRow(cells))
	}
	return table, nil
}

// requireColumns verifies the renamed sheet carries every canonical column.
func requireColumns(t *edd.Table, sheet string, required []string) error {
	for _, col := range required {
		if !t.HasColumn(col) {
			return &edd.MissingColumnError{Sheet: sheet, Column: col}
		}
	}
	return nil
}
