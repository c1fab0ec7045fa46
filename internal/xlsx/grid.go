package xlsx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Grid is a sparse worksheet: row number -> column number -> cell text.
// Rows and columns are 1-indexed like the on-disk format.
type Grid map[int]map[int]string

func (g Grid) set(row, col int, text string) {
	if g[row] == nil {
		g[row] = make(map[int]string)
	}
	g[row][col] = text
}

// Cell returns the text at (row, col), blank when absent.
func (g Grid) Cell(row, col int) string {
	return g[row][col]
}

// parseSheet streams a worksheet part into a Grid, resolving shared-string
// references and inline strings. Cells without a value element are skipped.
func parseSheet(xmlBytes []byte, sharedStrings []string) (Grid, error) {
	grid := make(Grid)
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))

	var cellRef, cellType string
	var value string
	var haveValue, inV, inT bool

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "c":
				cellRef, cellType, value, haveValue = "", "", "", false
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "r":
						cellRef = attr.Value
					case "t":
						cellType = attr.Value
					}
				}
			case "v":
				inV = true
			case "t":
				inT = true
				value, haveValue = "", true
			}
		case xml.CharData:
			if inV {
				value, haveValue = value+string(t), true
			} else if inT {
				value += string(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v":
				inV = false
			case "t":
				inT = false
			case "c":
				if cellRef != "" && strings.TrimSpace(value) != "" && haveValue {
					col, row := parseCellRef(cellRef)
					text := value
					if cellType == "s" {
						if idx, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && idx >= 0 && idx < len(sharedStrings) {
							text = sharedStrings[idx]
						}
					}
					grid.set(row, col, text)
				}
			}
		}
	}
	return grid, nil
}

// parseSharedStrings reads the flat <t> list of the shared-string table.
func parseSharedStrings(xmlBytes []byte) ([]string, error) {
	if xmlBytes == nil {
		return nil, nil
	}
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var out []string
	var buf strings.Builder
	inT := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inT = true
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" && inT {
				inT = false
				out = append(out, buf.String())
			}
		}
	}
	return out, nil
}

// parseCellRef splits "AB12" into column 28, row 12.
func parseCellRef(ref string) (col, row int) {
	i := 0
	for i < len(ref) && (ref[i] < '0' || ref[i] > '9') {
		ch := ref[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if ch >= 'A' && ch <= 'Z' {
			col = col*26 + int(ch-'A'+1)
		}
		i++
	}
	row, _ = strconv.Atoi(ref[i:])
	return col, row
}

// columnName renders a 0-indexed column as its letter reference (0 -> A).
func columnName(index int) string {
	name := ""
	i := index
	for {
		rem := i % 26
		name = string(rune('A'+rem)) + name
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return name
}
