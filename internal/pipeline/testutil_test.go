package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eddcli/internal/config"
	"eddcli/internal/edd"
	"eddcli/internal/mapping"
)

// fakeStore is an in-memory ReferenceStore recording every lookup.
type fakeStore struct {
	stations map[string]bool
	// samples maps a sample id to the station name it is registered under.
	samples map[string]string

	stationQueries []string
	sampleQueries  []string

	err error
}

func (f *fakeStore) StationExists(_ context.Context, name string) (bool, error) {
	f.stationQueries = append(f.stationQueries, name)
	if f.err != nil {
		return false, f.err
	}
	return f.stations[name], nil
}

func (f *fakeStore) FindSampleStation(_ context.Context, sampleID string) (string, bool, error) {
	f.sampleQueries = append(f.sampleQueries, sampleID)
	if f.err != nil {
		return "", false, f.err
	}
	station, ok := f.samples[sampleID]
	return station, ok, nil
}

// testClock is a fixed reference instant for the future-date checks.
var testClock = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestState(t *testing.T, dataType string) *State {
	t.Helper()
	dt, err := config.ResolveDataType(dataType)
	require.NoError(t, err)
	return &State{
		DataType: dt,
		Mapping: &mapping.Workbook{
			Units: map[string]string{
				"mg/l": "mg/l",
				"ph":   "-",
			},
			Parameters: map[string]mapping.Parameter{
				"Chumbo total": {HGA: "Chumbo", Group: "Metais"},
			},
			Stations: map[string]mapping.Station{
				"pm-01-lab": {Name: "PM-01", Matrix: "Agua Subterranea"},
			},
			Lists: map[string]map[string]struct{}{
				"sample_type":  {"N": {}, "FD": {}},
				"quality_code": {"Q1": {}},
				"laboratory":   {"LabA": {}},
				"matrix":       {"Agua Subterranea": {}},
				"periodicity": {
					"Mensal": {}, "mensal": {},
					"Trimestral": {}, "trimestral": {},
					"Anual": {},
				},
			},
		},
		Stations: &edd.Table{Columns: stationTestColumns()},
		Results:  &edd.Table{Columns: resultTestColumns()},
		Now:      testClock,
	}
}

func stationTestColumns() []string {
	return []string{
		edd.ColSampleName, edd.ColStationName, edd.ColMatrix, edd.ColSampleType,
		edd.ColQualityCode, edd.ColLaboratory, edd.ColPeriodicity,
		edd.ColMonitoringRound, edd.ColSampleDate, edd.ColSampleTime,
		edd.ColSampleID, edd.ColComment,
	}
}

func resultTestColumns() []string {
	return []string{
		edd.ColParameterOrg, edd.ColParameterHGA, edd.ColParameterGroup,
		edd.ColUnitOrg, edd.ColUnitHGA, edd.ColResultValue, edd.ColResultNumHGA,
		edd.ColResultTxtHGA, edd.ColAnalysisDate, edd.ColAnalysisTime,
		edd.ColComment,
	}
}

// stationRow builds a station row that passes every check, then applies the
// overrides.
func stationRow(overrides map[string]string) *edd.Row {
	cells := map[string]string{
		edd.ColSampleName:      "PM-01-Lab",
		edd.ColStationName:     "PM-01",
		edd.ColMatrix:          "Agua Subterranea",
		edd.ColSampleType:      "N",
		edd.ColQualityCode:     "Q1",
		edd.ColLaboratory:      "LabA",
		edd.ColPeriodicity:     "Mensal",
		edd.ColMonitoringRound: "2024M3",
		edd.ColSampleDate:      "15/03/2024",
		edd.ColSampleTime:      "10:30",
		edd.ColSampleID:        "S-1001",
		edd.ColComment:         "sem observacao",
	}
	for k, v := range overrides {
		cells[k] = v
	}
	return edd.NewRow(cells)
}

// resultRow builds a result row that passes every check, then applies the
// overrides.
func resultRow(overrides map[string]string) *edd.Row {
	cells := map[string]string{
		edd.ColParameterOrg:   "Chumbo total",
		edd.ColParameterHGA:   "Chumbo",
		edd.ColParameterGroup: "Metais",
		edd.ColUnitOrg:        "mg/l",
		edd.ColUnitHGA:        "mg/l",
		edd.ColResultValue:    "0,5",
		edd.ColResultNumHGA:   "0.5",
		edd.ColResultTxtHGA:   "",
		edd.ColAnalysisDate:   "15/03/2024",
		edd.ColAnalysisTime:   "10:30",
		edd.ColComment:        "",
	}
	for k, v := range overrides {
		cells[k] = v
	}
	return edd.NewRow(cells)
}

func findings(row *edd.Row) []edd.Finding {
	return row.Annotations.Findings()
}
