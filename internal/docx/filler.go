// Package docx fills a word-processor template by placeholder substitution.
// Placeholders look like {{ key }} and may be split across adjacent text runs
// by the tool that produced the template; the filler glues broken markers back
// together before substituting. Everything except text-run content passes
// through byte-for-byte.
package docx

import (
	"regexp"
	"strings"

	"github.com/lawliet8886/RPA/internal/container"
)

// text-run nodes: <w:t ...>TEXT</w:t>
var reTextRun = regexp.MustCompile(`(?s)<w:t[^>]*>(.*?)</w:t>`)

// Fill substitutes every recognized placeholder across the template container
// and returns the rebuilt archive. Only *.xml parts are rewritten; all other
// parts are copied through unmodified. Unknown placeholders stay verbatim.
func Fill(template []byte, placeholders map[string]string) ([]byte, error) {
	arc, err := container.Open(template)
	if err != nil {
		return nil, err
	}

	w := container.NewWriter()
	for _, name := range arc.ListParts() {
		data, _ := arc.ReadPart(name)
		if strings.HasSuffix(name, ".xml") {
			replaced := replaceInXML(string(data), placeholders)
			data = []byte(replaced)
		}
		if err := w.WritePart(name, data); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

// replaceInXML performs substitution over the text-run nodes of one XML part.
// A node holding an unmatched "{{" is concatenated with the following nodes
// until "}}" appears; the substituted result lands in the first node and the
// consumed nodes are blanked, which preserves the surrounding run formatting.
func replaceInXML(xml string, placeholders map[string]string) string {
	locs := reTextRun.FindAllStringSubmatchIndex(xml, -1)
	if len(locs) == 0 {
		return substitute(xml, placeholders)
	}

	contents := make([]string, len(locs))
	for i, loc := range locs {
		contents[i] = xml[loc[2]:loc[3]]
	}

	i := 0
	for i < len(contents) {
		cur := contents[i]
		start := strings.Index(cur, "{{")
		if start < 0 {
			contents[i] = substitute(cur, placeholders)
			i++
			continue
		}
		if strings.Contains(cur[start+2:], "}}") {
			// fully self-contained in this node
			contents[i] = substitute(cur, placeholders)
			i++
			continue
		}

		// opener without closer: glue following nodes until one closes it
		prefix := cur[:start]
		var sb strings.Builder
		sb.WriteString(cur[start:])
		j := i + 1
		found := false
		for j < len(contents) {
			sb.WriteString(contents[j])
			if strings.Contains(sb.String(), "}}") {
				found = true
				break
			}
			j++
		}
		if !found {
			// no closing marker anywhere: substitute this node alone
			contents[i] = substitute(cur, placeholders)
			i++
			continue
		}

		contents[i] = prefix + substitute(sb.String(), placeholders)
		for k := i + 1; k <= j; k++ {
			contents[k] = ""
		}
		i = j + 1
	}

	// rebuild, swapping only the inner content of each text run
	var out strings.Builder
	out.Grow(len(xml) + 128)
	last := 0
	for i, loc := range locs {
		out.WriteString(xml[last:loc[2]])
		out.WriteString(contents[i])
		out.WriteString(xml[loc[3]:loc[1]])
		last = loc[1]
	}
	out.WriteString(xml[last:])
	return out.String()
}

// substitute replaces every {{ key }} occurrence, tolerant of whitespace
// inside the marker. Values are XML-escaped; unknown keys are left alone.
func substitute(text string, placeholders map[string]string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	for key, value := range placeholders {
		safe := escapeXML(value)
		text = strings.ReplaceAll(text, "{{ "+key+" }}", safe)
		text = strings.ReplaceAll(text, "{{"+key+"}}", safe)
		re, err := regexp.Compile(`\{\{\s*` + regexp.QuoteMeta(key) + `\s*\}\}`)
		if err != nil {
			continue
		}
		text = re.ReplaceAllString(text, safe)
	}
	return text
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
