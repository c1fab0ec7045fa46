package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookOpensInRealReader(t *testing.T) {
	rows := [][]string{
		{"Profissional", "CPF", "Valor"},
		{"Maria & José", "529.982.247-25", "1350.50"},
		{"<escaped>", `"quoted"`, "it's"},
	}
	data, err := WriteWorkbook("Pagamento", rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Pagamento"}, f.GetSheetList())

	for r, row := range rows {
		for c, want := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			got, err := f.GetCellValue("Pagamento", cell)
			require.NoError(t, err)
			assert.Equal(t, want, got, cell)
		}
	}
}

func TestWriteWorkbookTruncatesSheetName(t *testing.T) {
	long := "UmNomeDeAbaComMuitoMaisDeTrintaEUmCaracteres"
	data, err := WriteWorkbook(long, [][]string{{"x"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	require.Len(t, names, 1)
	assert.Len(t, []rune(names[0]), 31)
}

func TestWriteWorkbookTruncatesBeforeEscaping(t *testing.T) {
	// an escapable character near the cap must not be clipped mid-entity
	name := strings.Repeat("A", 29) + "&B"
	data, err := WriteWorkbook(name, [][]string{{"x"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	names := f.GetSheetList()
	require.Len(t, names, 1)
	assert.Equal(t, name, names[0])
}

func TestWriteWorkbookRoundTripsThroughImporterGrid(t *testing.T) {
	// the hand-rolled writer output must also be readable by the
	// hand-rolled grid parser (inline-string path)
	data, err := WriteWorkbook("Tabela", [][]string{
		{"FUNCAO", "TURNO", "VALOR 12H"},
		{"Enfermeiro plantonista", "DIA", "1.000,00"},
	})
	require.NoError(t, err)

	rules, err := NewImporter(nil).Import(data)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, 12, rules[0].Hours)
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(0))
	assert.Equal(t, "Z", columnName(25))
	assert.Equal(t, "AA", columnName(26))
	assert.Equal(t, "AB", columnName(27))
	assert.Equal(t, "BA", columnName(52))
}
