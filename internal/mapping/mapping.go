// Package mapping loads the De-Para workbook: the site-specific translation
// of laboratory column names, units, parameters, and station codes to the
// canonical reference vocabulary. The workbook is read once per run and the
// resulting lookup tables are read-only afterwards.
package mapping

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"eddcli/internal/edd"
)

// Sheet names expected in every De-Para workbook.
const (
	SheetColumns    = "Columns"
	SheetParameters = "Parameters"
	SheetStation    = "Station"
	SheetUnits      = "Units"
	SheetLists      = "Lists"
)

// Parameter is the canonical identity of a laboratory parameter.
type Parameter struct {
	HGA   string
	Group string
}

// Station is the canonical identity of a sampling point.
type Station struct {
	Name   string
	Matrix string
}

// Workbook holds every De-Para lookup table.
type Workbook struct {
	// SampleRenames and ResultRenames map laboratory column headers to
	// canonical names, per target table.
	SampleRenames map[string]string
	ResultRenames map[string]string

	// Units maps trimmed, lower-cased original units to the reference unit.
	Units map[string]string

	// Parameters is keyed by the laboratory's parameter name as-is.
	Parameters map[string]Parameter

	// Stations is keyed by the lower-cased laboratory sample name.
	Stations map[string]Station

	// Lists maps an enumerated field name to its set of allowed values.
	Lists map[string]map[string]struct{}
}

// LookupUnit resolves an original unit, matching trimmed and lower-cased.
func (w *Workbook) LookupUnit(originalUnit string) (string, bool) {
	u, ok := w.Units[strings.ToLower(strings.TrimSpace(originalUnit))]
	return u, ok
}

// LookupParameter resolves a laboratory parameter name.
func (w *Workbook) LookupParameter(parameterOrg string) (Parameter, bool) {
	p, ok := w.Parameters[parameterOrg]
	return p, ok
}

// LookupStation resolves a laboratory sample name, matching case-insensitively.
func (w *Workbook) LookupStation(sampleName string) (Station, bool) {
	s, ok := w.Stations[strings.ToLower(sampleName)]
	return s, ok
}

// AllowedValues returns the allowed-value set for an enumerated field. The
// second result is false when the Lists sheet has no column for the field.
func (w *Workbook) AllowedValues(field string) (map[string]struct{}, bool) {
	set, ok := w.Lists[field]
	return set, ok
}

// Load reads every De-Para sheet from the workbook at path.
func Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open De-Para file: %w", err)
	}
	defer f.Close()

	wb := &Workbook{
		SampleRenames: make(map[string]string),
		ResultRenames: make(map[string]string),
		Units:         make(map[string]string),
		Parameters:    make(map[string]Parameter),
		Stations:      make(map[string]Station),
		Lists:         make(map[string]map[string]struct{}),
	}

	if err := wb.loadColumns(f, path); err != nil {
		return nil, err
	}
	if err := wb.loadParameters(f, path); err != nil {
		return nil, err
	}
	if err := wb.loadStations(f, path); err != nil {
		return nil, err
	}
	if err := wb.loadUnits(f, path); err != nil {
		return nil, err
	}
	if err := wb.loadLists(f, path); err != nil {
		return nil, err
	}
	return wb, nil
}

// sheetRows reads a named sheet, returning a MissingSheetError when absent.
func sheetRows(f *excelize.File, path, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &edd.MissingSheetError{File: path, Sheet: sheet}
	}
	return rows, nil
}

// headerIndex maps trimmed header names to their column positions.
func headerIndex(rows [][]string) map[string]int {
	idx := make(map[string]int)
	if len(rows) == 0 {
		return idx
	}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h != "" {
			idx[h] = i
		}
	}
	return idx
}

// cell returns the trimmed value at column i of a (possibly short) row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// requireHeaders checks that every named header exists in the sheet.
func requireHeaders(sheet string, idx map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := idx[name]; !ok {
			return &edd.MissingColumnError{Sheet: sheet, Column: name}
		}
	}
	return nil
}

func (w *Workbook) loadColumns(f *excelize.File, path string) error {
	rows, err := sheetRows(f, path, SheetColumns)
	if err != nil {
		return err
	}
	idx := headerIndex(rows)
	if err := requireHeaders(SheetColumns, idx, "Tabela", "Nome da Coluna no EDD", "Padrao Formatador"); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		source := cell(row, idx["Nome da Coluna no EDD"])
		target := cell(row, idx["Padrao Formatador"])
		if source == "" || target == "" {
			continue
		}
		switch cell(row, idx["Tabela"]) {
		case "Sample":
			w.SampleRenames[source] = target
		case "Result":
			w.ResultRenames[source] = target
		}
	}
	return nil
}

func (w *Workbook) loadParameters(f *excelize.File, path string) error {
	rows, err := sheetRows(f, path, SheetParameters)
	if err != nil {
		return err
	}
	idx := headerIndex(rows)
	if err := requireHeaders(SheetParameters, idx, "Parametro Original", "Parametro Padrao", "Grupo Padrao"); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		org := cell(row, idx["Parametro Original"])
		if org == "" {
			continue
		}
		w.Parameters[org] = Parameter{
			HGA:   cell(row, idx["Parametro Padrao"]),
			Group: cell(row, idx["Grupo Padrao"]),
		}
	}
	return nil
}

func (w *Workbook) loadStations(f *excelize.File, path string) error {
	rows, err := sheetRows(f, path, SheetStation)
	if err != nil {
		return err
	}
	idx := headerIndex(rows)
	if err := requireHeaders(SheetStation, idx, "Sample Name (Nome no Laboratorio)", "Codigo HGA", "Matriz"); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		sampleName := cell(row, idx["Sample Name (Nome no Laboratorio)"])
		if sampleName == "" {
			continue
		}
		w.Stations[strings.ToLower(sampleName)] = Station{
			Name:   cell(row, idx["Codigo HGA"]),
			Matrix: cell(row, idx["Matriz"]),
		}
	}
	return nil
}

func (w *Workbook) loadUnits(f *excelize.File, path string) error {
	rows, err := sheetRows(f, path, SheetUnits)
	if err != nil {
		return err
	}
	idx := headerIndex(rows)
	if err := requireHeaders(SheetUnits, idx, "original_unit", "hga_unit"); err != nil {
		return err
	}
	for _, row := range rows[1:] {
		org := strings.ToLower(cell(row, idx["original_unit"]))
		if org == "" {
			continue
		}
		w.Units[org] = cell(row, idx["hga_unit"])
	}
	return nil
}

func (w *Workbook) loadLists(f *excelize.File, path string) error {
	rows, err := sheetRows(f, path, SheetLists)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for col, header := range rows[0] {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		set := make(map[string]struct{})
		for _, row := range rows[1:] {
			// The Lists columns are padded with blanks; blanks are not
			// allowed values.
			if v := cell(row, col); v != "" {
				set[v] = struct{}{}
			}
		}
		w.Lists[header] = set
	}
	return nil
}
