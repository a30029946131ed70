package pipeline

import (
	"context"
	"fmt"
	"strings"

	"eddcli/internal/edd"
)

// parameterStage reconciles the canonical parameter name and group against
// the De-Para Parameters table, keyed by the laboratory's parameter name.
type parameterStage struct{}

func (parameterStage) ID() string   { return StageParameters }
func (parameterStage) Name() string { return "Parameter reconciliation" }

func (parameterStage) Execute(_ context.Context, state *State) error {
	for _, row := range state.Results.Rows {
		mapped, ok := state.Mapping.LookupParameter(row.Get(edd.ColParameterOrg))
		if !ok {
			row.Annotations.AddError(StageParameters,
				"Não encontrado correspondência no de-para para parameter_org")
			continue
		}

		var corrections []string
		if current := row.Get(edd.ColParameterHGA); current != mapped.HGA {
			row.Set(edd.ColParameterHGA, mapped.HGA)
			corrections = append(corrections, fmt.Sprintf(
				"parameter_hga ajustado de '%s' para '%s'", current, mapped.HGA))
		}
		if current := row.Get(edd.ColParameterGroup); current != mapped.Group {
			row.Set(edd.ColParameterGroup, mapped.Group)
			corrections = append(corrections, fmt.Sprintf(
				"parameter_group ajustado de '%s' para '%s'", current, mapped.Group))
		}
		if len(corrections) > 0 {
			row.Annotations.AddCorrection(StageParameters,
				"Correção: "+strings.Join(corrections, ", "))
		}
	}
	return nil
}
