package pipeline

import (
	"context"
	"fmt"
	"strings"

	"eddcli/internal/edd"
	"eddcli/internal/refdb"
)

// stationCheckStage confirms every station name is registered in the
// reference database. The match is exact: case and whitespace sensitive.
type stationCheckStage struct {
	store refdb.ReferenceStore
}

func (stationCheckStage) ID() string   { return StageStationCheck }
func (stationCheckStage) Name() string { return "Station existence check" }

func (s stationCheckStage) Execute(ctx context.Context, state *State) error {
	for _, row := range state.Stations.Rows {
		name := row.Get(edd.ColStationName)
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || strings.EqualFold(trimmed, "nan") {
			// No database round trip for a value that cannot match.
			row.Annotations.AddError(StageStationCheck, "station_name ausente ou inválido.")
			continue
		}

		exists, err := s.store.StationExists(ctx, name)
		if err != nil {
			return NewConnectionError(StageStationCheck, err)
		}
		if !exists {
			row.Annotations.AddError(StageStationCheck, fmt.Sprintf(
				"station_name %s não está cadastrado no banco.", name))
		}
	}
	return nil
}
