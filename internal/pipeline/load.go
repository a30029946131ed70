package pipeline

import (
	"context"

	"eddcli/internal/loader"
	"eddcli/internal/mapping"
)

// loadStage reads the De-Para workbook and the EDD sheets into the shared
// state. Every later stage depends on the canonical column names it
// establishes.
type loadStage struct{}

func (loadStage) ID() string   { return StageLoad }
func (loadStage) Name() string { return "Load and rename" }

func (loadStage) Execute(_ context.Context, state *State) error {
	wb, err := mapping.Load(state.DeParaPath)
	if err != nil {
		return NewInputError(StageLoad, err)
	}
	state.Mapping = wb

	stations, results, err := loader.LoadEDD(state.EDDPath, state.DataType, wb)
	if err != nil {
		return NewInputError(StageLoad, err)
	}
	state.Stations = stations
	state.Results = results
	return nil
}
