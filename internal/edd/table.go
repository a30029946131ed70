package edd

// Canonical column names shared by the pipeline stages. The loader renames
// whatever the laboratory called these columns before any stage runs.
const (
	ColSampleName      = "sample_name"
	ColStationName     = "station_name"
	ColMatrix          = "matrix"
	ColSampleType      = "sample_type"
	ColQualityCode     = "quality_code"
	ColLaboratory      = "laboratory"
	ColPeriodicity     = "periodicity"
	ColMonitoringRound = "monitoring_round"
	ColSampleDate      = "sample_date"
	ColSampleTime      = "sample_time"
	ColSampleID        = "sample_id"
	ColRecordResp      = "record_resp"
	ColSamplerName     = "sampler_name"
	ColComment         = "comment"

	ColParameterOrg   = "parameter_org"
	ColParameterHGA   = "parameter_hga"
	ColParameterGroup = "parameter_group"
	ColUnitOrg        = "unit_org"
	ColUnitHGA        = "unit_hga"
	ColResultValue    = "result_value"
	ColResultNumHGA   = "result_num_hga"
	ColResultTxtHGA   = "result_txt_hga"
	ColAnalysisDate   = "analysis_date"
	ColAnalysisTime   = "analysis_time"

	// Audit columns written at export time.
	ColAction            = "acao"
	ColCorrectionComment = "comentario_correcao"
)

// Row is a single record of an EDD table: its cell values keyed by canonical
// column name plus the findings accumulated by the pipeline.
type Row struct {
	cells map[string]string

	// OriginalSampleName keeps the laboratory's sample name exactly as read,
	// before any case normalization, so the export shows the original value.
	OriginalSampleName string

	Annotations Annotations
}

// NewRow builds a row from a cell map. The map is owned by the row afterwards.
func NewRow(cells map[string]string) *Row {
	if cells == nil {
		cells = make(map[string]string)
	}
	return &Row{cells: cells}
}

// Get returns the cell value for a canonical column, or "" when absent.
func (r *Row) Get(col string) string {
	return r.cells[col]
}

// Set writes a cell value.
func (r *Row) Set(col, value string) {
	r.cells[col] = value
}

// Table is a wide in-memory table with a stable column order and stable row
// identity. No pipeline stage adds, drops, or reorders rows; the partition
// into valid and error subsets happens only at export.
type Table struct {
	Columns []string
	Rows    []*Row
}

// HasColumn reports whether the table carries the given column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// EnsureColumn appends the column to the export order if it is not present.
func (t *Table) EnsureColumn(col string) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
}

// Partition splits the rows into (valid, errored) by the accumulated
// findings. Corrections alone keep a row valid; any error moves it to the
// error subset.
func (t *Table) Partition() (valid, errored []*Row) {
	for _, row := range t.Rows {
		if row.Annotations.HasError() {
			errored = append(errored, row)
		} else {
			valid = append(valid, row)
		}
	}
	return valid, errored
}
