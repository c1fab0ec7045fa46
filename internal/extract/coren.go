package extract

import (
	"regexp"
	"strings"
	"time"
)

// CorenFields holds the professional-license number and expiry found in text.
type CorenFields struct {
	Numero   string
	Validade string // dd/MM/yyyy
}

var (
	reCorenNum = regexp.MustCompile(`(?i)\bCOREN\s*[\- ]?\s*([A-Z]{2})\s*(\d{3,10})\b`)
	reValidade = regexp.MustCompile(`(?i)\b(validade|vence|vencimento)\s*[:\-]?\s*(\d{2}[/\-]\d{2}[/\-]\d{4})\b`)
)

// FindCoren extracts the COREN number (jurisdiction code concatenated with the
// digits, e.g. RJ123456) and the labelled expiry date in canonical dd/MM/yyyy.
func FindCoren(text string) CorenFields {
	var out CorenFields
	if m := reCorenNum.FindStringSubmatch(text); m != nil {
		out.Numero = strings.ToUpper(m[1]) + m[2]
	}
	if m := reValidade.FindStringSubmatch(text); m != nil {
		out.Validade = canonicalDate(m[2])
	}
	return out
}

// canonicalDate re-emits a dd/MM/yyyy date in canonical text, keeping the raw
// match when it does not parse so a human can still read it off the field.
func canonicalDate(s string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), "-", "/")
	d, err := time.Parse("02/01/2006", cleaned)
	if err != nil {
		return cleaned
	}
	return d.Format("02/01/2006")
}
