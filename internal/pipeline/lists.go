package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eddcli/internal/edd"
)

// Fixed values applied to every station row before the list checks.
const (
	recordRespValue  = "EDD Laboratorio"
	samplerNameValue = "Terceirizada"
)

// listStage force-fills the fixed responsibility fields, validates every
// enumerated station column against the De-Para Lists sheet, and checks the
// monitoring round code derived from the sample date.
type listStage struct{}

func (listStage) ID() string   { return StageLists }
func (listStage) Name() string { return "Mandatory list validation" }

func (listStage) Execute(_ context.Context, state *State) error {
	stations := state.Stations
	stations.EnsureColumn(edd.ColRecordResp)
	stations.EnsureColumn(edd.ColSamplerName)
	for _, row := range stations.Rows {
		row.Set(edd.ColRecordResp, recordRespValue)
		row.Set(edd.ColSamplerName, samplerNameValue)
	}

	for _, field := range state.DataType.ListFields {
		allowed, ok := state.Mapping.AllowedValues(field)
		if !ok {
			return NewInputError(StageLists,
				&edd.MissingColumnError{Sheet: "Lists", Column: field})
		}
		for _, row := range stations.Rows {
			value := row.Get(field)
			if value == "" {
				row.Annotations.AddError(StageLists, fmt.Sprintf(
					"Campo '%s' de lista obrigatória está vazio ou nulo.", field))
				continue
			}
			if _, ok := allowed[value]; !ok {
				row.Annotations.AddError(StageLists, fmt.Sprintf(
					"Campo '%s' de lista obrigatória com valor inválido: '%s'", field, value))
			}
		}
	}

	for _, row := range stations.Rows {
		checkMonitoringRound(row)
	}
	return nil
}

// checkMonitoringRound verifies the round code expected from the sample date
// for monthly and quarterly periodicities. Other periodicities carry no
// derivable round and are skipped, as are sample dates the date stage will
// flag later anyway.
func checkMonitoringRound(row *edd.Row) {
	periodicity := strings.ToLower(strings.TrimSpace(row.Get(edd.ColPeriodicity)))

	date, ok := parseDayFirstDate(row.Get(edd.ColSampleDate))
	if !ok {
		return
	}

	var expected string
	switch periodicity {
	case "mensal":
		expected = fmt.Sprintf("%dM%d", date.Year(), int(date.Month()))
	case "trimestral":
		quarter := (int(date.Month())-1)/3 + 1
		expected = fmt.Sprintf("%dT%d", date.Year(), quarter)
	default:
		return
	}

	if current := row.Get(edd.ColMonitoringRound); current != expected {
		row.Annotations.AddError(StageLists, fmt.Sprintf(
			"monitoring_round incorreto: '%s', esperado: '%s'", current, expected))
	}
}

// parseDayFirstDate parses a date cell day-first, ignoring any time part.
func parseDayFirstDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
