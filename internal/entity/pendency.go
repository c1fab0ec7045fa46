package entity

// PendencyAction tells the caller how an outstanding item is remediated.
type PendencyAction string

const (
	ActionAttachCPF            PendencyAction = "ATTACH_CPF"
	ActionAttachPIS            PendencyAction = "ATTACH_PIS"
	ActionAttachResidencia     PendencyAction = "ATTACH_RESIDENCIA"
	ActionAttachCartaTerceiros PendencyAction = "ATTACH_CARTA_TERCEIROS"
	ActionAttachDocTitular     PendencyAction = "ATTACH_DOC_TITULAR"
	ActionAttachDocProf        PendencyAction = "ATTACH_DOC_PROF"
	ActionAttachBanco          PendencyAction = "ATTACH_BANCO"
	ActionAttachCoren          PendencyAction = "ATTACH_COREN"
	ActionAttachNadaConsta     PendencyAction = "ATTACH_NADA_CONSTA"
	ActionEditFields           PendencyAction = "EDIT_FIELDS"
)

// Pendency is one outstanding compliance item blocking a worker's submission.
// Pendencies are derived on demand and never persisted.
type Pendency struct {
	Title       string
	Description string
	Action      PendencyAction
}
