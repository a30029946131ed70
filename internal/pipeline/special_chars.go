package pipeline

import (
	"context"
	"regexp"

	"eddcli/internal/edd"
)

// accentedPattern is the fixed set of accented Latin characters the target
// system rejects in free-text comments.
var accentedPattern = regexp.MustCompile(`[áéíóúâêîôûãõçÁÉÍÓÚÂÊÎÔÛÃÕÇ]`)

// specialCharStage flags disallowed accented characters in the free-text
// comment column of both tables.
type specialCharStage struct{}

func (specialCharStage) ID() string   { return StageSpecialChars }
func (specialCharStage) Name() string { return "Special character check" }

func (specialCharStage) Execute(_ context.Context, state *State) error {
	checkComments(state.Results)
	checkComments(state.Stations)
	return nil
}

func checkComments(table *edd.Table) {
	for _, row := range table.Rows {
		comment := row.Get(edd.ColComment)
		if comment != "" && accentedPattern.MatchString(comment) {
			row.Annotations.AddError(StageSpecialChars,
				"Caracteres especiais encontrados na coluna 'comment'")
		}
	}
}
