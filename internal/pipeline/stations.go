package pipeline

import (
	"context"
	"fmt"

	"eddcli/internal/edd"
)

// stationStage reconciles the station name and matrix of every station row
// against the De-Para Station table. Matching on the laboratory sample name
// is case-insensitive, but the sample_name cell itself is never rewritten:
// the export shows it exactly as the laboratory delivered it.
type stationStage struct{}

func (stationStage) ID() string   { return StageStations }
func (stationStage) Name() string { return "Station reconciliation" }

func (stationStage) Execute(_ context.Context, state *State) error {
	for _, row := range state.Stations.Rows {
		mapped, ok := state.Mapping.LookupStation(row.Get(edd.ColSampleName))
		if !ok {
			continue
		}

		if current := row.Get(edd.ColMatrix); current != mapped.Matrix {
			row.Set(edd.ColMatrix, mapped.Matrix)
			row.Annotations.AddCorrection(StageStations, fmt.Sprintf(
				"Correção: matrix ajustado de '%s' para '%s'", current, mapped.Matrix))
		}
		if current := row.Get(edd.ColStationName); current != mapped.Name {
			row.Set(edd.ColStationName, mapped.Name)
			row.Annotations.AddCorrection(StageStations, fmt.Sprintf(
				"Correção: station_name ajustado de '%s' para '%s'", current, mapped.Name))
		}
	}
	return nil
}
