package extract

import (
	"github.com/lawliet8886/RPA/internal/checksum"
	"github.com/lawliet8886/RPA/internal/entity"
)

// Merge applies recognized text to a snapshot of a worker's extracted fields
// and returns the updated copy. The input is never mutated. Already non-blank
// fields are kept (first-extraction-wins); the nominal flag is derived once,
// the first time any text is merged while it is still unset.
func Merge(current entity.ExtractedFields, ocrText, workerName string) entity.ExtractedFields {
	text := Normalize(ocrText)
	out := current

	if out.CPF == "" {
		if d, ok := findValidID(text, reCPFPunct, checksum.ValidCPF); ok {
			out.CPF = checksum.FormatCPF(d)
		}
	}

	if out.PISPasep == "" {
		if d, ok := findValidID(text, rePISPunct, checksum.ValidPIS); ok {
			out.PISPasep = checksum.FormatPIS(d)
		}
	}

	if out.ComprovanteDataEmissao == "" {
		if d, ok := findLatestDate(text); ok {
			out.ComprovanteDataEmissao = d.Format("02/01/2006")
		}
	}
	if out.ComprovanteEhNominal == nil {
		nominal := nameAppearsIn(text, workerName)
		out.ComprovanteEhNominal = &nominal
	}

	bank := FindBank(text)
	if out.BancoAgencia == "" && bank.Agencia != "" {
		out.BancoAgencia = bank.Agencia
	}
	if out.BancoConta == "" && bank.Conta != "" {
		out.BancoConta = bank.Conta
	}
	if out.BancoTitular == "" && bank.Titular != "" {
		out.BancoTitular = bank.Titular
	}

	coren := FindCoren(text)
	if out.CorenNumero == "" && coren.Numero != "" {
		out.CorenNumero = coren.Numero
	}
	if out.CorenValidade == "" && coren.Validade != "" {
		out.CorenValidade = coren.Validade
	}

	if out.CorenNadaConstaMesAno == "" {
		if ym, ok := findLatestMonthYear(text); ok {
			out.CorenNadaConstaMesAno = ym
		}
	}

	return out
}
