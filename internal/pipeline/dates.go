package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eddcli/internal/edd"
)

var (
	dateLayouts = []string{"02/01/2006", "2006-01-02"}
	timeLayouts = []string{"15:04", "15:04:05"}
)

// dateStage validates the date and time fields of both tables against the
// accepted formats and flags dates later than the run clock. After the
// per-row checks, every date column is canonicalized to DD/MM/YYYY and every
// time column to HH:MM:SS wherever the value parses; unparseable values are
// left exactly as delivered.
type dateStage struct{}

func (dateStage) ID() string   { return StageDates }
func (dateStage) Name() string { return "Date and time check" }

func (dateStage) Execute(_ context.Context, state *State) error {
	now := state.Now

	for _, row := range state.Results.Rows {
		checkDateCell(row, edd.ColAnalysisDate, now)
		checkTimeCell(row, edd.ColAnalysisTime)
	}
	for _, row := range state.Stations.Rows {
		checkDateCell(row, edd.ColSampleDate, now)
		checkTimeCell(row, edd.ColSampleTime)
	}

	// Canonicalization runs even on rows already flagged above.
	for _, row := range state.Results.Rows {
		reformatDateCell(row, edd.ColAnalysisDate)
		reformatTimeCell(row, edd.ColAnalysisTime)
	}
	for _, row := range state.Stations.Rows {
		reformatDateCell(row, edd.ColSampleDate)
		reformatTimeCell(row, edd.ColSampleTime)
	}
	return nil
}

// splitValue extracts the date or time half of a combined "date time" cell.
func splitValue(raw string, wantTime bool) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		if wantTime {
			return raw[i+1:]
		}
		return raw[:i]
	}
	return raw
}

func checkDateCell(row *edd.Row, field string, now time.Time) {
	value := splitValue(row.Get(field), false)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if t.After(now) {
			row.Annotations.AddError(StageDates, fmt.Sprintf(
				"Data futura em %s: %s", field, value))
		}
		return
	}
	row.Annotations.AddError(StageDates, fmt.Sprintf(
		"Formato inválido em %s: %s", field, value))
}

func checkTimeCell(row *edd.Row, field string) {
	value := splitValue(row.Get(field), true)
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return
		}
	}
	row.Annotations.AddError(StageDates, fmt.Sprintf(
		"Formato inválido em %s: %s", field, value))
}

func reformatDateCell(row *edd.Row, field string) {
	value := splitValue(row.Get(field), false)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			row.Set(field, t.Format("02/01/2006"))
			return
		}
	}
}

func reformatTimeCell(row *edd.Row, field string) {
	value := splitValue(row.Get(field), true)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			row.Set(field, t.Format("15:04:05"))
			return
		}
	}
}
