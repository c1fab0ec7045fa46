// Package xlsx reads official price-table workbooks and writes the payment
// ledger, operating directly on the ZIP+XML container format. Only the subset
// of the format this workflow needs is supported; everything else in a
// workbook is ignored.
package xlsx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/container"
	"github.com/lawliet8886/RPA/internal/entity"
)

// ErrNoPriceSheet is returned when no worksheet in the workbook carries a
// recognizable pricing header and column mapping.
var ErrNoPriceSheet = errors.New("no recognizable pricing sheet/columns")

// maxDataRows bounds the scan below the header row.
const maxDataRows = 400

// Importer extracts price rules from an official fee-table workbook.
type Importer struct {
	logger *slog.Logger
}

func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger}
}

// Import parses the workbook bytes and returns the rule set of the worksheet
// that looks most like the official fee table (most 12h-valued rules wins).
func (im *Importer) Import(data []byte) ([]entity.ImportedPriceRule, error) {
	arc, err := container.Open(data)
	if err != nil {
		return nil, err
	}

	ssBytes, _ := arc.ReadPart("xl/sharedStrings.xml")
	sharedStrings, err := parseSharedStrings(ssBytes)
	if err != nil {
		// a broken shared-string table degrades to raw indices, not failure
		im.logger.Warn("pricetable.sharedstrings.unparseable", "error", err)
		sharedStrings = nil
	}

	var best []entity.ImportedPriceRule
	bestScore := -1
	for _, path := range resolveSheetPaths(arc) {
		xmlBytes, ok := arc.ReadPart(path)
		if !ok {
			continue
		}
		grid, err := parseSheet(xmlBytes, sharedStrings)
		if err != nil {
			im.logger.Warn("pricetable.sheet.unparseable", "part", path, "error", err)
			continue
		}
		headerRow, ok := findHeaderRow(grid)
		if !ok {
			continue
		}
		cols := mapColumns(grid, headerRow)
		if cols.funcao < 0 || cols.turno < 0 || cols.valor12 < 0 {
			continue
		}
		rules := extractRules(grid, headerRow, cols)
		score := 0
		for _, r := range rules {
			if r.Hours == 12 {
				score++
			}
		}
		im.logger.Info("pricetable.sheet.candidate", "part", path, "rules", len(rules), "score", score)
		if score > bestScore {
			bestScore = score
			best = rules
		}
	}

	if bestScore < 0 {
		return nil, ErrNoPriceSheet
	}
	return best, nil
}

// resolveSheetPaths follows workbook.xml sheet order through the relationship
// part. When either manifest is missing or malformed it falls back to a sorted
// scan for worksheet-shaped entry names.
func resolveSheetPaths(arc *container.Archive) []string {
	fallback := func() []string {
		var out []string
		for _, name := range arc.ListPartsSorted() {
			if strings.HasPrefix(name, "xl/worksheets/") && strings.HasSuffix(name, ".xml") {
				out = append(out, name)
			}
		}
		return out
	}

	wb, okWB := arc.ReadPart("xl/workbook.xml")
	rels, okRels := arc.ReadPart("xl/_rels/workbook.xml.rels")
	if !okWB || !okRels {
		return fallback()
	}

	idToTarget := parseRelationships(rels)
	var paths []string
	dec := xml.NewDecoder(bytes.NewReader(wb))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fallback()
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "sheet" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local != "id" {
				continue
			}
			target := idToTarget[attr.Value]
			if target == "" {
				continue
			}
			if strings.HasPrefix(target, "/") {
				paths = append(paths, target[1:])
			} else {
				paths = append(paths, "xl/"+target)
			}
		}
	}

	if len(paths) == 0 {
		return fallback()
	}
	return paths
}

func parseRelationships(rels []byte) map[string]string {
	out := make(map[string]string)
	dec := xml.NewDecoder(bytes.NewReader(rels))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Relationship" {
			continue
		}
		var id, target string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "Id":
				id = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if id != "" && target != "" {
			out[id] = target
		}
	}
	return out
}

type colMap struct {
	funcao  int
	ch      int
	turno   int
	valor8  int
	valor12 int
}

// findHeaderRow scores rows 1..12 by keyword presence and accepts the best
// row only when its score reaches 5. Keyword weights mirror the official
// table: role +3, shift +2, 12h value +3, 8h value +1.
func findHeaderRow(grid Grid) (int, bool) {
	bestRow, bestScore := 0, 0
	for row := 1; row <= 12; row++ {
		cells, ok := grid[row]
		if !ok {
			continue
		}
		var vals []string
		for _, raw := range cells {
			vals = append(vals, normalize(raw))
		}
		contains := func(pred func(string) bool) bool {
			for _, v := range vals {
				if pred(v) {
					return true
				}
			}
			return false
		}
		score := 0
		if contains(func(v string) bool { return strings.Contains(v, "FUNCAO") }) {
			score += 3
		}
		if contains(func(v string) bool { return strings.Contains(v, "TURNO") }) {
			score += 2
		}
		if contains(func(v string) bool { return strings.Contains(v, "12H") && strings.Contains(v, "VALOR") }) {
			score += 3
		}
		if contains(func(v string) bool { return strings.Contains(v, "8H") && strings.Contains(v, "VALOR") }) {
			score += 1
		}
		if score > bestScore {
			bestScore = score
			bestRow = row
		}
	}
	if bestScore >= 5 {
		return bestRow, true
	}
	return 0, false
}

// mapColumns binds header cells to semantic columns by normalized substring.
func mapColumns(grid Grid, headerRow int) colMap {
	cols := colMap{funcao: -1, ch: -1, turno: -1, valor8: -1, valor12: -1}
	for col, raw := range grid[headerRow] {
		h := normalize(raw)
		if cols.funcao < 0 && strings.Contains(h, "FUNCAO") {
			cols.funcao = col
		}
		if cols.ch < 0 && strings.Contains(h, "CH") && strings.Contains(h, "SEMANAL") {
			cols.ch = col
		}
		if cols.turno < 0 && strings.Contains(h, "TURNO") {
			cols.turno = col
		}
		if cols.valor8 < 0 && strings.Contains(h, "8H") && strings.Contains(h, "VALOR") && !strings.Contains(h, "12H") {
			cols.valor8 = col
		}
		if cols.valor12 < 0 && strings.Contains(h, "12H") && strings.Contains(h, "VALOR") {
			cols.valor12 = col
		}
	}
	return cols
}

func extractRules(grid Grid, headerRow int, cols colMap) []entity.ImportedPriceRule {
	var out []entity.ImportedPriceRule
	for row := headerRow + 1; row <= headerRow+maxDataRows; row++ {
		cells, ok := grid[row]
		if !ok {
			continue
		}
		funcaoRaw := strings.TrimSpace(cells[cols.funcao])
		if funcaoRaw == "" {
			continue
		}

		period := constants.ShiftDay
		turno := normalize(cells[cols.turno])
		if strings.Contains(turno, "NOITE") || strings.Contains(turno, "NOTUR") {
			period = constants.ShiftNight
		}

		funcao := normalizeRole(funcaoRaw)

		if v12, ok := parseMoney(cells[cols.valor12]); ok && v12.IsPositive() {
			out = append(out, entity.ImportedPriceRule{Funcao: funcao, Period: period, Hours: 12, Value: v12})
		}
		if cols.valor8 > 0 {
			if v8, ok := parseMoney(cells[cols.valor8]); ok && v8.IsPositive() {
				out = append(out, entity.ImportedPriceRule{Funcao: funcao, Period: period, Hours: 8, Value: v8})
			}
		}
	}
	return out
}
