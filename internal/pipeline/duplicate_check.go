package pipeline

import (
	"context"
	"fmt"

	"eddcli/internal/edd"
	"eddcli/internal/refdb"
)

// duplicateStage confirms no sample id in the EDD is already persisted in
// the reference database. A hit is an error either way; the comment
// distinguishes whether the registered station matches the row's.
type duplicateStage struct {
	store refdb.ReferenceStore
}

func (duplicateStage) ID() string   { return StageDuplicates }
func (duplicateStage) Name() string { return "Duplicate sample check" }

func (s duplicateStage) Execute(ctx context.Context, state *State) error {
	for _, row := range state.Stations.Rows {
		sampleID := row.Get(edd.ColSampleID)

		registeredStation, found, err := s.store.FindSampleStation(ctx, sampleID)
		if err != nil {
			return NewConnectionError(StageDuplicates, err)
		}
		if !found {
			continue
		}

		if registeredStation == row.Get(edd.ColStationName) {
			row.Annotations.AddError(StageDuplicates, fmt.Sprintf(
				"Amostra '%s' já cadastrada no ponto '%s' (mesmo ponto) no banco.",
				sampleID, registeredStation))
		} else {
			row.Annotations.AddError(StageDuplicates, fmt.Sprintf(
				"Amostra '%s' já cadastrada no ponto '%s' (diferente) no banco.",
				sampleID, registeredStation))
		}
	}
	return nil
}
