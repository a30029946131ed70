package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"eddcli/internal/config"
	"eddcli/internal/refdb"
)

// Request describes one validation run.
type Request struct {
	EDDPath    string `validate:"required"`
	DeParaPath string `validate:"required"`
	DataType   string `validate:"required"`
}

var validate = validator.New()

// Run executes the full validation pipeline for the request and returns the
// path of the written output workbook. The store must already be connected;
// any database failure aborts the run with no output written.
func Run(ctx context.Context, req Request, dt config.DataTypeConfig, store refdb.ReferenceStore, logger *slog.Logger) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", NewValidationError("invalid pipeline request", err)
	}

	state := &State{
		DataType:   dt,
		EDDPath:    req.EDDPath,
		DeParaPath: req.DeParaPath,
		Now:        time.Now(),
	}

	runner := NewRunner(Stages(store), logger)
	if err := runner.Run(ctx, state); err != nil {
		return "", err
	}
	return state.OutputPath, nil
}

// Stages returns the full stage sequence in execution order.
func Stages(store refdb.ReferenceStore) []Stage {
	return []Stage{
		loadStage{},
		unitStage{},
		parameterStage{},
		stationStage{},
		listStage{},
		stationCheckStage{store: store},
		duplicateStage{store: store},
		resultValueStage{},
		dateStage{},
		specialCharStage{},
		exportStage{},
	}
}
