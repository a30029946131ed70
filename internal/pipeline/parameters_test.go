package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eddcli/internal/edd"
)

func TestParameterStageNoMatch(t *testing.T) {
	state := newTestState(t, "agua")
	row := resultRow(map[string]string{edd.ColParameterOrg: "Desconhecido"})
	state.Results.Rows = []*edd.Row{row}

	require.NoError(t, parameterStage{}.Execute(context.Background(), state))

	assert.Equal(t, "erro", row.Annotations.ActionCell())
	assert.Equal(t,
		"Não encontrado correspondência no de-para para parameter_org",
		row.Annotations.CommentCell())
}

func TestParameterStageCorrectsBothFields(t *testing.T) {
	state := newTestState(t, "agua")
	row := resultRow(map[string]string{
		edd.ColParameterHGA:   "Pb",
		edd.ColParameterGroup: "Inorganicos",
	})
	state.Results.Rows = []*edd.Row{row}

	require.NoError(t, parameterStage{}.Execute(context.Background(), state))

	assert.Equal(t, "Chumbo", row.Get(edd.ColParameterHGA))
	assert.Equal(t, "Metais", row.Get(edd.ColParameterGroup))
	assert.Equal(t, "corrigido", row.Annotations.ActionCell())
	assert.Equal(t,
		"Correção: parameter_hga ajustado de 'Pb' para 'Chumbo', parameter_group ajustado de 'Inorganicos' para 'Metais'",
		row.Annotations.CommentCell())
}

func TestParameterStageCorrectsSingleField(t *testing.T) {
	state := newTestState(t, "agua")
	row := resultRow(map[string]string{edd.ColParameterGroup: "Inorganicos"})
	state.Results.Rows = []*edd.Row{row}

	require.NoError(t, parameterStage{}.Execute(context.Background(), state))

	assert.Equal(t,
		"Correção: parameter_group ajustado de 'Inorganicos' para 'Metais'",
		row.Annotations.CommentCell())
}

func TestParameterStageMatchNoAction(t *testing.T) {
	state := newTestState(t, "agua")
	row := resultRow(nil)
	state.Results.Rows = []*edd.Row{row}

	require.NoError(t, parameterStage{}.Execute(context.Background(), state))

	assert.Empty(t, findings(row))
}
