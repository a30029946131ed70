package pipeline

import (
	"strconv"
	"strings"
)

// parseResultValue parses a laboratory result value: range markers ("<", ">")
// are stripped and a comma decimal separator is accepted.
func parseResultValue(raw string) (float64, bool) {
	cleaned := strings.NewReplacer("<", "", ">", "", ",", ".").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloatComma parses a plain numeric cell, accepting a comma decimal
// separator. Range markers are not stripped here.
func parseFloatComma(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a numeric value the way the audit comments and the
// corrected cells show it.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
