package xlsx

import (
	"fmt"
	"strings"

	"github.com/lawliet8886/RPA/internal/container"
)

// WriteWorkbook emits a minimal single-sheet workbook: every cell an inline
// string, no shared-string table, no styles. Standard spreadsheet readers
// open the result normally. Rows and cells are written in the given order.
func WriteWorkbook(sheetName string, rows [][]string) ([]byte, error) {
	w := container.NewWriter()
	parts := []struct {
		name string
		xml  string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"xl/workbook.xml", workbookXML(sheetName)},
		{"xl/_rels/workbook.xml.rels", workbookRelsXML},
		{"xl/worksheets/sheet1.xml", sheetXML(rows)},
	}
	for _, p := range parts {
		if err := w.WritePart(p.name, []byte(p.xml)); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
  <Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`

const workbookRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
</Relationships>`

func workbookXML(sheetName string) string {
	// sheet names are capped at 31 characters by the format; truncate before
	// escaping so the cut cannot land inside a character entity
	if r := []rune(sheetName); len(r) > 31 {
		sheetName = string(r[:31])
	}
	safe := escapeXML(sheetName)
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="` + safe + `" sheetId="1" r:id="rId1"/>
  </sheets>
</workbook>`
}

func sheetXML(rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	sb.WriteString(`<sheetData>`)
	for rIdx, row := range rows {
		rowNumber := rIdx + 1
		fmt.Fprintf(&sb, `<row r="%d">`, rowNumber)
		for cIdx, value := range row {
			fmt.Fprintf(&sb, `<c r="%s%d" t="inlineStr"><is><t>%s</t></is></c>`, columnName(cIdx), rowNumber, escapeXML(value))
		}
		sb.WriteString(`</row>`)
	}
	sb.WriteString(`</sheetData>`)
	sb.WriteString(`</worksheet>`)
	return sb.String()
}

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)
