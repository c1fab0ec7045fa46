package export

import (
	"strings"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/entity"
)

// buildChecklist renders a worker's document checklist: identity header,
// open pendencies (or the all-clear line), and a per-category attachment
// roster.
func buildChecklist(w entity.Worker, attachments []entity.Attachment, pendencies []entity.Pendency) string {
	var b strings.Builder
	b.WriteString("CHECKLIST – " + w.Nome + "\n")
	b.WriteString("Função: " + w.Funcao + "\n")
	b.WriteString("CPF: " + w.Extracted.CPF + "\n")
	b.WriteString("PIS/PASEP: " + w.Extracted.PISPasep + "\n")
	b.WriteString("\n")

	if len(pendencies) == 0 {
		b.WriteString("✅ Sem pendências\n")
	} else {
		b.WriteString("⚠ Pendências:\n")
		for _, p := range pendencies {
			b.WriteString("- " + p.Title + ": " + p.Description + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("Documentos anexados:\n")
	have := make(map[constants.DocCategory]bool, len(attachments))
	for _, a := range attachments {
		have[a.Category] = true
	}
	for _, cat := range constants.AllCategories() {
		status := "PENDENTE"
		if have[cat] {
			status = "OK"
		}
		b.WriteString("- " + string(cat) + ": " + status + "\n")
	}
	return b.String()
}
