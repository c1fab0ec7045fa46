package xlsx

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize strips accents, uppercases and trims, so header and role matching
// survive whatever spelling the sheet author used.
func normalize(s string) string {
	stripped, _, err := transform.String(accentStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.ToUpper(strings.TrimSpace(stripped))
}

// parseMoney converts Brazilian monetary text ("R$ 1.234,56") to a decimal.
// Returns false for anything that does not survive the cleanup.
func parseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(raw, "R$", "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// normalizeRole applies the fixed business remapping: on-call nursing roles
// are always standardized to their canonical 40h labels no matter how the
// sheet spells them, so imported rules line up with worker role labels.
// Every other role passes through trimmed but otherwise untouched.
func normalizeRole(raw string) string {
	n := normalize(raw)
	switch {
	case strings.Contains(n, "ENFERMEIRO") && strings.Contains(n, "PLANTON"):
		return "Enfermeiro (plantonista) 40h"
	case (strings.Contains(n, "TECNICO") || strings.Contains(n, "TEC")) &&
		strings.Contains(n, "ENFERMAG") && strings.Contains(n, "PLANTON"):
		return "Téc. de Enfermagem (plantonista) 40h"
	default:
		return strings.TrimSpace(raw)
	}
}
