package xlsx

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/container"
)

// buildFixture produces a real workbook (shared strings, workbook rels and
// all) so the importer is exercised against output of an actual XLSX library.
func buildFixture(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

var fixtureHeader = []any{"FUNÇÃO", "CH SEMANAL", "TURNO", "VALOR 8H", "VALOR 12H"}

func TestImportReadsPriceRules(t *testing.T) {
	data := buildFixture(t, map[string][][]any{
		"Tabela": {
			{"Tabela oficial de valores"},
			fixtureHeader,
			{"Enfermeiro Plantonista", "40", "Noturno", "R$ 900,00", "R$ 1.350,50"},
			{"Fisioterapeuta", "30", "Dia", "", "R$ 800,00"},
		},
	})

	rules, err := NewImporter(nil).Import(data)
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, "Enfermeiro (plantonista) 40h", rules[0].Funcao)
	assert.Equal(t, constants.ShiftNight, rules[0].Period)
	assert.Equal(t, 12, rules[0].Hours)
	assert.True(t, rules[0].Value.Equal(decimal.RequireFromString("1350.50")), rules[0].Value.String())

	assert.Equal(t, 8, rules[1].Hours)
	assert.True(t, rules[1].Value.Equal(decimal.RequireFromString("900")))

	assert.Equal(t, "Fisioterapeuta", rules[2].Funcao)
	assert.Equal(t, constants.ShiftDay, rules[2].Period)
}

func TestImportPicksSheetWithMostTwelveHourRules(t *testing.T) {
	data := buildFixture(t, map[string][][]any{
		"Resumo": {
			fixtureHeader,
			{"Enfermeiro Plantonista", "40", "Dia", "", "R$ 1.000,00"},
		},
		"Completa": {
			fixtureHeader,
			{"Enfermeiro Plantonista", "40", "Dia", "", "R$ 1.000,00"},
			{"Enfermeiro Plantonista", "40", "Noite", "", "R$ 1.200,00"},
			{"Téc de Enfermagem Plantonista", "40", "Dia", "", "R$ 700,00"},
		},
	})

	rules, err := NewImporter(nil).Import(data)
	require.NoError(t, err)

	twelve := 0
	for _, r := range rules {
		if r.Hours == 12 {
			twelve++
		}
	}
	assert.Equal(t, 3, twelve)
}

func TestImportFailsWithoutPricingSheet(t *testing.T) {
	data := buildFixture(t, map[string][][]any{
		"Dados": {
			{"Nome", "Telefone"},
			{"Maria", "9999-0000"},
		},
	})

	_, err := NewImporter(nil).Import(data)
	assert.ErrorIs(t, err, ErrNoPriceSheet)
}

func TestImportFallsBackToPathScan(t *testing.T) {
	// hand-built container with no workbook or relationship parts at all:
	// the importer must find worksheet-shaped entries by name
	sheet := `<?xml version="1.0"?><worksheet><sheetData>` +
		`<row r="1">` +
		`<c r="A1" t="inlineStr"><is><t>FUNCAO</t></is></c>` +
		`<c r="B1" t="inlineStr"><is><t>TURNO</t></is></c>` +
		`<c r="C1" t="inlineStr"><is><t>VALOR 12H</t></is></c>` +
		`</row>` +
		`<row r="2">` +
		`<c r="A2" t="inlineStr"><is><t>Enfermeiro plantonista</t></is></c>` +
		`<c r="B2" t="inlineStr"><is><t>NOITE</t></is></c>` +
		`<c r="C2" t="inlineStr"><is><t>1.234,56</t></is></c>` +
		`</row>` +
		`</sheetData></worksheet>`

	w := container.NewWriter()
	require.NoError(t, w.WritePart("xl/worksheets/sheet1.xml", []byte(sheet)))
	data, err := w.Bytes()
	require.NoError(t, err)

	rules, err := NewImporter(nil).Import(data)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Enfermeiro (plantonista) 40h", rules[0].Funcao)
	assert.Equal(t, constants.ShiftNight, rules[0].Period)
	assert.True(t, rules[0].Value.Equal(decimal.RequireFromString("1234.56")))
}

func TestImportRejectsNonZip(t *testing.T) {
	_, err := NewImporter(nil).Import(bytes.Repeat([]byte{0x42}, 64))
	assert.Error(t, err)
}

func TestFindHeaderRowThreshold(t *testing.T) {
	// role (+3) and shift (+2) keywords: exactly 5 points, accepted
	grid := make(Grid)
	grid.set(7, 1, "Função")
	grid.set(7, 2, "Turno")
	row, ok := findHeaderRow(grid)
	require.True(t, ok)
	assert.Equal(t, 7, row)

	// role (+3) and 8h value (+1): 4 points, rejected wherever it sits
	grid = make(Grid)
	grid.set(2, 1, "FUNCAO")
	grid.set(2, 2, "VALOR 8H")
	_, ok = findHeaderRow(grid)
	assert.False(t, ok)

	// rows beyond 12 are never considered
	grid = make(Grid)
	grid.set(13, 1, "FUNCAO")
	grid.set(13, 2, "TURNO")
	grid.set(13, 3, "VALOR 12H")
	_, ok = findHeaderRow(grid)
	assert.False(t, ok)
}

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ENFERMEIRO PLANTONISTA", "Enfermeiro (plantonista) 40h"},
		{"Enfermeiro plantonista 30h", "Enfermeiro (plantonista) 40h"},
		{"enfermeiro PLANTONISTA noturno", "Enfermeiro (plantonista) 40h"},
		{"Técnico de Enfermagem Plantonista", "Téc. de Enfermagem (plantonista) 40h"},
		{"TEC ENFERMAGEM PLANTONISTA", "Téc. de Enfermagem (plantonista) 40h"},
		{"Enfermeiro diarista", "Enfermeiro diarista"},
		{"  Fisioterapeuta  ", "Fisioterapeuta"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeRole(tc.in), tc.in)
	}
}

func TestParseMoney(t *testing.T) {
	v, ok := parseMoney("R$ 1.234,56")
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.RequireFromString("1234.56")))

	v, ok = parseMoney("800")
	require.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(800)))

	_, ok = parseMoney("")
	assert.False(t, ok)
	_, ok = parseMoney("n/d")
	assert.False(t, ok)
}

func TestParseCellRef(t *testing.T) {
	col, row := parseCellRef("A2")
	assert.Equal(t, 1, col)
	assert.Equal(t, 2, row)

	col, row = parseCellRef("AB12")
	assert.Equal(t, 28, col)
	assert.Equal(t, 12, row)
}
