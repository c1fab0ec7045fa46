package entity

import (
	"github.com/google/uuid"
)

// Worker represents a staffing-contract professional tracked by the system.
type Worker struct {
	ID          uuid.UUID       `json:"id"`
	Nome        string          `json:"nome"`
	Funcao      string          `json:"funcao"`
	Telefone    string          `json:"telefone"`
	Email       string          `json:"email"`
	Endereco    string          `json:"endereco"`
	EstadoCivil string          `json:"estado_civil"`
	Extracted   ExtractedFields `json:"extracted"`
	Manual      ManualOverrides `json:"manual"`
}

// DefaultFuncao is the role assigned to new workers until a record says otherwise.
const DefaultFuncao = "Enfermeiro (plantonista) 40h"

// ExtractedFields holds values parsed from recognized text or entered by hand.
// Blank means "not yet known". Dates are textual dd/MM/yyyy, the good-standing
// period is MM/yyyy; the formats are part of the audit trail and are kept as-is.
type ExtractedFields struct {
	CPF                    string `json:"cpf"`
	PISPasep               string `json:"pis_pasep"`
	BancoAgencia           string `json:"banco_agencia"`
	BancoConta             string `json:"banco_conta"`
	BancoTitular           string `json:"banco_titular"`
	ComprovanteDataEmissao string `json:"comprovante_data_emissao"`
	ComprovanteEhNominal   *bool  `json:"comprovante_eh_nominal,omitempty"`
	CorenNumero            string `json:"coren_numero"`
	CorenValidade          string `json:"coren_validade"`
	CorenNadaConstaMesAno  string `json:"coren_nada_consta_mes_ano"`
}

// ManualOverrides records that a human has accepted or corrected a field,
// bypassing automatic validation. Set only through an explicit edit action.
type ManualOverrides struct {
	CPFConfirmado         bool `json:"cpf_confirmado"`
	PISConfirmado         bool `json:"pis_confirmado"`
	BancoConfirmado       bool `json:"banco_confirmado"`
	ComprovanteConfirmado bool `json:"comprovante_confirmado"`
	CorenConfirmado       bool `json:"coren_confirmado"`
	NadaConstaConfirmado  bool `json:"nada_consta_confirmado"`
}
