package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"eddcli/internal/edd"
)

var digitPattern = regexp.MustCompile(`\d`)

// resultValueStage flags negative or textual values in the numeric result
// field and digits leaking into the textual result field. Both checks may
// fire on the same row.
type resultValueStage struct{}

func (resultValueStage) ID() string   { return StageResultValues }
func (resultValueStage) Name() string { return "Result value check" }

func (resultValueStage) Execute(_ context.Context, state *State) error {
	for _, row := range state.Results.Rows {
		if raw := row.Get(edd.ColResultNumHGA); raw != "" {
			if value, ok := parseFloatComma(raw); ok {
				if value < 0 {
					row.Annotations.AddError(StageResultValues, fmt.Sprintf(
						"Valor negativo encontrado em 'result_num_hga': %s", formatNumber(value)))
				}
			} else {
				row.Annotations.AddError(StageResultValues,
					"Texto encontrado em campo numérico 'result_num_hga'")
			}
		}

		if digitPattern.MatchString(row.Get(edd.ColResultTxtHGA)) {
			row.Annotations.AddError(StageResultValues,
				"Números encontrados no campo de texto 'result_txt_hga'")
		}
	}
	return nil
}
