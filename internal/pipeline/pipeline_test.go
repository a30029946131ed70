package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"eddcli/internal/config"
	"eddcli/internal/exporter"
	"eddcli/internal/mapping"
)

// writeDeParaFixture builds a minimal but complete De-Para workbook.
func writeDeParaFixture(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]interface{}{
		mapping.SheetColumns: {
			{"Tabela", "Nome da Coluna no EDD", "Padrao Formatador"},
			{"Sample", "Nome da Amostra", "sample_name"},
			{"Result", "Parametro", "parameter_org"},
		},
		mapping.SheetParameters: {
			{"Parametro Original", "Parametro Padrao", "Grupo Padrao"},
			{"Chumbo total", "Chumbo", "Metais"},
		},
		mapping.SheetStation: {
			{"Sample Name (Nome no Laboratorio)", "Codigo HGA", "Matriz"},
			{"PM-01-LAB", "PM-01", "Agua Subterranea"},
		},
		mapping.SheetUnits: {
			{"original_unit", "hga_unit"},
			{"mg/l", "mg/l"},
			{"µg/l", "mg/l"},
		},
		mapping.SheetLists: {
			{"sample_type", "quality_code", "laboratory", "matrix", "periodicity"},
			{"N", "Q1", "LabA", "Agua Subterranea", "Mensal"},
			{"FD", "", "", "", "Trimestral"},
		},
	}

	require.NoError(t, f.SetSheetName("Sheet1", mapping.SheetColumns))
	for name, rows := range sheets {
		if name != mapping.SheetColumns {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellRef, &row))
		}
	}

	path := filepath.Join(dir, "depara.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// writeEDDFixture builds a water EDD with one clean-after-correction row and
// one errored row per table.
func writeEDDFixture(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Monitoring_Sample"))
	sampleRows := [][]interface{}{
		{"Nome da Amostra", "station_name", "matrix", "sample_type", "quality_code",
			"laboratory", "periodicity", "monitoring_round", "sample_date",
			"sample_time", "sample_id", "comment"},
		{"PM-01-LAB", "PM-1", "Agua Subterranea", "N", "Q1",
			"LabA", "Mensal", "2024M3", "15/03/2024", "10:30", "S-1", "ok"},
		{"PM-02-LAB", "PM-99", "Agua Subterranea", "N", "Q1",
			"LabA", "Mensal", "2024M3", "15/03/2024", "10:30", "S-2", "ok"},
	}

	_, err := f.NewSheet("Monitoring_Sample_Result")
	require.NoError(t, err)
	resultRows := [][]interface{}{
		{"Parametro", "parameter_hga", "parameter_group", "unit_org", "unit_hga",
			"result_value", "result_num_hga", "result_txt_hga", "analysis_date",
			"analysis_time", "comment"},
		{"Chumbo total", "Chumbo", "Metais", "µg/l", "mg/l",
			"12,5", "12.5", "", "15/03/2024", "10:30", ""},
		{"Chumbo total", "Chumbo", "Metais", "mg/l", "mg/l",
			"0,5", "0.5", "", "15/03/2024", "10:30", "Água contaminada"},
	}

	for sheet, rows := range map[string][][]interface{}{
		"Monitoring_Sample":        sampleRows,
		"Monitoring_Sample_Result": resultRows,
	} {
		for i, row := range rows {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
		}
	}

	path := filepath.Join(dir, "edd.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// sheetAsMaps reads a sheet into one map per data row, keyed by header.
func sheetAsMaps(t *testing.T, f *excelize.File, sheet string) []map[string]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	var out []map[string]string
	for _, raw := range rows[1:] {
		m := make(map[string]string)
		for i, header := range rows[0] {
			if i < len(raw) {
				m[header] = raw[i]
			} else {
				m[header] = ""
			}
		}
		out = append(out, m)
	}
	return out
}

func TestPipelineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	deParaPath := writeDeParaFixture(t, dir)
	eddPath := writeEDDFixture(t, dir)

	dt, err := config.ResolveDataType("agua")
	require.NoError(t, err)

	store := &fakeStore{stations: map[string]bool{"PM-01": true}}
	state := &State{
		DataType:   dt,
		EDDPath:    eddPath,
		DeParaPath: deParaPath,
		Now:        testClock,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := NewRunner(Stages(store), logger)
	require.NoError(t, runner.Run(context.Background(), state))

	require.Equal(t, exporter.OutputPath(eddPath, testClock), state.OutputPath)
	assert.Contains(t, state.OutputPath, "_validated_010620241200")

	// Row counts are invariant: two station and two result rows in, two out.
	require.Len(t, state.Stations.Rows, 2)
	require.Len(t, state.Results.Rows, 2)

	f, err := excelize.OpenFile(state.OutputPath)
	require.NoError(t, err)
	defer f.Close()

	valid := sheetAsMaps(t, f, "Monitoring_Sample")
	require.Len(t, valid, 1)
	assert.Equal(t, "PM-01-LAB", valid[0]["sample_name"])
	assert.Equal(t, "PM-01", valid[0]["station_name"])
	assert.Equal(t, "EDD Laboratorio", valid[0]["record_resp"])
	assert.Equal(t, "Terceirizada", valid[0]["sampler_name"])
	assert.Equal(t, "10:30:00", valid[0]["sample_time"])
	assert.Equal(t, "corrigido", valid[0]["acao"])
	assert.Equal(t,
		"Correção: station_name ajustado de 'PM-1' para 'PM-01'",
		valid[0]["comentario_correcao"])

	errored := sheetAsMaps(t, f, exporter.SampleErrorSheet)
	require.Len(t, errored, 1)
	assert.Equal(t, "PM-02-LAB", errored[0]["sample_name"])
	assert.Equal(t, "erro", errored[0]["acao"])
	assert.Equal(t,
		"station_name PM-99 não está cadastrado no banco.",
		errored[0]["comentario_correcao"])

	results := sheetAsMaps(t, f, "Monitoring_Sample_Result")
	require.Len(t, results, 1)
	assert.Equal(t, "0.0125", results[0]["result_num_hga"])
	assert.Equal(t, "mg/l", results[0]["unit_hga"])
	assert.Equal(t, "corrigido", results[0]["acao"])
	assert.Equal(t,
		"Conversão de unidade realizada: µg/l para mg/l, valor ajustado de 12.5 para 0.0125.",
		results[0]["comentario_correcao"])

	resultsErr := sheetAsMaps(t, f, exporter.ResultErrorSheet)
	require.Len(t, resultsErr, 1)
	assert.Equal(t, "erro", resultsErr[0]["acao"])
	assert.Equal(t,
		"Caracteres especiais encontrados na coluna 'comment'",
		resultsErr[0]["comentario_correcao"])

	// The reference database was only consulted for station existence and
	// duplicate sample ids.
	assert.ElementsMatch(t, []string{"PM-01", "PM-99"}, store.stationQueries)
	assert.ElementsMatch(t, []string{"S-1", "S-2"}, store.sampleQueries)
}

func TestRunRejectsIncompleteRequest(t *testing.T) {
	dt, err := config.ResolveDataType("agua")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err = Run(context.Background(), Request{EDDPath: "edd.xlsx"}, dt, &fakeStore{}, logger)

	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeValidation, perr.Type)
}

// recordingStage counts its own executions.
type recordingStage struct {
	id    string
	calls *[]string
}

func (s recordingStage) ID() string   { return s.id }
func (s recordingStage) Name() string { return s.id }
func (s recordingStage) Execute(_ context.Context, _ *State) error {
	*s.calls = append(*s.calls, s.id)
	return nil
}

func TestRunnerExecutesEachStageOnceInOrder(t *testing.T) {
	var calls []string
	stages := []Stage{
		recordingStage{id: "first", calls: &calls},
		recordingStage{id: "second", calls: &calls},
		recordingStage{id: "third", calls: &calls},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := NewRunner(stages, logger)
	require.NoError(t, runner.Run(context.Background(), &State{}))

	// Single-pass: a stage never runs twice, so no comment is ever appended
	// twice for the same check.
	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner := NewRunner(Stages(&fakeStore{}), logger)

	err := runner.Run(ctx, &State{})
	var perr *PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeExecution, perr.Type)
}
