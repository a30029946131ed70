package pipeline

import (
	"context"
	"time"

	"eddcli/internal/config"
	"eddcli/internal/edd"
	"eddcli/internal/mapping"
)

// Stage identifiers, also used to tag findings on rows.
const (
	StageLoad         = "load"
	StageUnits        = "unit_reconciler"
	StageParameters   = "parameter_reconciler"
	StageStations     = "station_reconciler"
	StageLists        = "list_validator"
	StageStationCheck = "station_existence"
	StageDuplicates   = "duplicate_check"
	StageResultValues = "result_value_check"
	StageDates        = "date_check"
	StageSpecialChars = "special_char_check"
	StageExport       = "export"
)

// Stage represents a single step of the validation run.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Execute runs the stage against the shared state
	Execute(ctx context.Context, state *State) error
}

// State is the shared run state every stage reads and mutates. Row counts in
// Stations and Results are invariant from the load stage until export.
type State struct {
	DataType   config.DataTypeConfig
	EDDPath    string
	DeParaPath string

	Mapping  *mapping.Workbook
	Stations *edd.Table
	Results  *edd.Table

	// Now anchors the future-date checks and the output file timestamp so a
	// whole run sees one consistent clock.
	Now time.Time

	// OutputPath is set by the export stage.
	OutputPath string
}
