package pipeline

import (
	"context"

	"eddcli/internal/exporter"
)

// exportStage partitions both tables by their findings and writes the
// timestamped output workbook next to the input file.
type exportStage struct{}

func (exportStage) ID() string   { return StageExport }
func (exportStage) Name() string { return "Partition and export" }

func (exportStage) Execute(_ context.Context, state *State) error {
	outputPath := exporter.OutputPath(state.EDDPath, state.Now)
	if err := exporter.Write(outputPath, state.DataType, state.Stations, state.Results); err != nil {
		return NewExportError(err)
	}
	state.OutputPath = outputPath
	return nil
}
