package pipeline

import (
	"context"
	"fmt"
	"strings"

	"eddcli/internal/edd"
)

// unitPair is a (original unit, target unit) combination, lower-cased.
type unitPair struct {
	from string
	to   string
}

// unitConversions are the hard-coded unit combinations whose numeric result
// is rescaled instead of just relabeled.
var unitConversions = map[unitPair]float64{
	{"µg/l", "mg/l"}:            0.001,
	{"ug/l", "mg/l"}:            0.001,
	{"mg/l", "ug/l"}:            1000,
	{"miligrama-litro", "ug/l"}: 1000,
}

// unitStage reconciles result units against the De-Para Units table and
// applies the hard-coded unit conversions to the numeric result.
type unitStage struct{}

func (unitStage) ID() string   { return StageUnits }
func (unitStage) Name() string { return "Unit reconciliation" }

func (unitStage) Execute(_ context.Context, state *State) error {
	for _, row := range state.Results.Rows {
		// Comparison is trimmed and lower-cased; the cells themselves keep
		// their original casing unless corrected below.
		unitOrg := strings.ToLower(strings.TrimSpace(row.Get(edd.ColUnitOrg)))
		unitHGA := strings.ToLower(strings.TrimSpace(row.Get(edd.ColUnitHGA)))

		if factor, ok := unitConversions[unitPair{unitOrg, unitHGA}]; ok {
			value, ok := parseResultValue(row.Get(edd.ColResultValue))
			if !ok {
				row.Annotations.AddError(StageUnits,
					"Valor numérico ausente ou inválido para conversão de unidade.")
				continue
			}
			converted := value * factor
			row.Set(edd.ColResultNumHGA, formatNumber(converted))
			row.Annotations.AddCorrection(StageUnits, fmt.Sprintf(
				"Conversão de unidade realizada: %s para %s, valor ajustado de %s para %s.",
				unitOrg, unitHGA, formatNumber(value), formatNumber(converted)))
			continue
		}

		mapped, ok := state.Mapping.LookupUnit(unitOrg)
		if !ok {
			row.Annotations.AddError(StageUnits,
				"Não encontrado correspondência no de-para para unit_org")
			continue
		}
		if current := row.Get(edd.ColUnitHGA); current != mapped {
			row.Set(edd.ColUnitHGA, mapped)
			row.Annotations.AddCorrection(StageUnits, fmt.Sprintf(
				"Correção: unit_hga ajustado de '%s' para '%s' conforme De-Para.",
				current, mapped))
		}
	}
	return nil
}
