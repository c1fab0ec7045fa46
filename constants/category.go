package constants

import "strings"

// DocCategory classifies an attached document. The set is closed: the
// compliance rules and the export bundle both key off these values.
type DocCategory string

const (
	CategoryCPF             DocCategory = "CPF"
	CategoryPISPasep        DocCategory = "PIS_PASEP"
	CategoryComprovanteRes  DocCategory = "COMPROVANTE_RESIDENCIA"
	CategoryCartaTerceiros  DocCategory = "CARTA_RESIDENCIA_TERCEIROS"
	CategoryDocTitular      DocCategory = "DOC_TITULAR_COMPROVANTE"
	CategoryDocProfissional DocCategory = "DOC_PROFISSIONAL"
	CategoryBanco           DocCategory = "BANCO"
	CategoryCoren           DocCategory = "COREN"
	CategoryNadaConstaCoren DocCategory = "NADA_CONSTA_COREN"
)

var allCategories = []DocCategory{
	CategoryCPF,
	CategoryPISPasep,
	CategoryComprovanteRes,
	CategoryCartaTerceiros,
	CategoryDocTitular,
	CategoryDocProfissional,
	CategoryBanco,
	CategoryCoren,
	CategoryNadaConstaCoren,
}

// AllCategories returns the closed category set in checklist order.
func AllCategories() []DocCategory {
	out := make([]DocCategory, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory maps free-form input onto a category, case-insensitively.
func ParseCategory(input string) (DocCategory, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}
