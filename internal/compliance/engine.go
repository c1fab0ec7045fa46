// Package compliance derives the list of outstanding items blocking a
// worker's payment-request submission. ComputePendencies is pure: it reads an
// immutable snapshot and may be called repeatedly and concurrently. Every
// date or month/year parse failure counts as "not satisfied", never an error.
package compliance

import (
	"time"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/checksum"
	"github.com/lawliet8886/RPA/internal/entity"
)

// ComputePendencies evaluates every required item for the worker against its
// attachments, at the given reference date. The order of the returned items is
// fixed and feeds the checklist presentation.
func ComputePendencies(worker entity.Worker, attachments []entity.Attachment, today time.Time) []entity.Pendency {
	out := []entity.Pendency{}
	e := worker.Extracted
	m := worker.Manual
	today = dateOnly(today)

	has := func(cat constants.DocCategory) bool {
		for _, att := range attachments {
			if att.WorkerID == worker.ID && att.Category == cat {
				return true
			}
		}
		return false
	}

	// CPF
	cpfOK := (m.CPFConfirmado && e.CPF != "") || (e.CPF != "" && checksum.ValidCPF(e.CPF))
	if !cpfOK {
		out = append(out, entity.Pendency{
			Title:       "CPF pendente",
			Description: "CPF é obrigatório. Anexe o documento ou corrija manualmente.",
			Action:      entity.ActionAttachCPF,
		})
	}

	// PIS/PASEP
	pisDigits := digits(e.PISPasep)
	pisOK := (m.PISConfirmado && pisDigits != "") || (pisDigits != "" && checksum.ValidPIS(pisDigits))
	if !pisOK {
		out = append(out, entity.Pendency{
			Title:       "PIS/PASEP pendente",
			Description: "PIS/PASEP é obrigatório. Anexe o documento ou corrija manualmente.",
			Action:      entity.ActionAttachPIS,
		})
	}

	// Comprovante de residência
	if !has(constants.CategoryComprovanteRes) {
		out = append(out, entity.Pendency{
			Title:       "Comprovante de residência pendente",
			Description: "Anexe o comprovante de residência.",
			Action:      entity.ActionAttachResidencia,
		})
	} else {
		dateOK := m.ComprovanteConfirmado
		if !dateOK {
			if d, ok := parseDate(e.ComprovanteDataEmissao); ok {
				dateOK = !d.After(today) && d.After(today.AddDate(0, 0, -90))
			}
		}
		if !dateOK {
			out = append(out, entity.Pendency{
				Title:       "Comprovante fora do prazo",
				Description: "A data de emissão precisa estar dentro de 90 dias (ou estar legível).",
				Action:      entity.ActionEditFields,
			})
		}

		if e.ComprovanteEhNominal != nil && !*e.ComprovanteEhNominal {
			// Bill in a third party's name: letter plus both IDs become mandatory.
			if !has(constants.CategoryCartaTerceiros) {
				out = append(out, entity.Pendency{
					Title:       "Carta do titular pendente",
					Description: "Comprovante em nome de terceiros: precisa de carta de próprio punho do titular (nome+CPF) confirmando que o profissional (nome+CPF) reside no endereço.",
					Action:      entity.ActionAttachCartaTerceiros,
				})
			}
			if !has(constants.CategoryDocTitular) {
				out = append(out, entity.Pendency{
					Title:       "Documento do titular pendente",
					Description: "Anexe a foto do documento do titular do comprovante.",
					Action:      entity.ActionAttachDocTitular,
				})
			}
			if !has(constants.CategoryDocProfissional) {
				out = append(out, entity.Pendency{
					Title:       "Documento do profissional pendente",
					Description: "Anexe a foto do documento do profissional (junto à carta).",
					Action:      entity.ActionAttachDocProf,
				})
			}
		}
	}

	// Banco
	if !has(constants.CategoryBanco) {
		out = append(out, entity.Pendency{
			Title:       "Dados bancários pendentes",
			Description: "Anexe print do app ou foto frente/verso do cartão. Precisa mostrar agência, conta e nome do titular.",
			Action:      entity.ActionAttachBanco,
		})
	} else if !m.BancoConfirmado {
		if e.BancoAgencia == "" || e.BancoConta == "" || e.BancoTitular == "" {
			out = append(out, entity.Pendency{
				Title:       "Banco incompleto",
				Description: "Precisa ter agência, conta e nome do titular (legíveis).",
				Action:      entity.ActionEditFields,
			})
		}
	}

	// COREN
	if !has(constants.CategoryCoren) {
		out = append(out, entity.Pendency{
			Title:       "COREN pendente",
			Description: "Anexe o documento do COREN e garanta que a validade esteja legível.",
			Action:      entity.ActionAttachCoren,
		})
	} else if !m.CorenConfirmado {
		valDate, ok := parseDate(e.CorenValidade)
		if !ok || valDate.Before(today) {
			out = append(out, entity.Pendency{
				Title:       "COREN inválido/expirado",
				Description: "COREN precisa estar na validade (ou a validade precisa estar legível).",
				Action:      entity.ActionEditFields,
			})
		}
	}

	// Certidão Nada Consta
	if !has(constants.CategoryNadaConstaCoren) {
		out = append(out, entity.Pendency{
			Title:       "Certidão (Nada Consta) pendente",
			Description: "Anexe a certidão negativa do COREN do mês atual.",
			Action:      entity.ActionAttachNadaConsta,
		})
	} else if !m.NadaConstaConfirmado {
		ym, ok := parseMonthYear(e.CorenNadaConstaMesAno)
		nowYM := today.Year()*12 + int(today.Month())
		if !ok || ym < nowYM {
			out = append(out, entity.Pendency{
				Title:       "Nada Consta fora do mês",
				Description: "A certidão precisa ser do mês atual (ex.: 12/2025) ou posterior.",
				Action:      entity.ActionEditFields,
			})
		}
	}

	return out
}
