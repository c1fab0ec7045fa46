package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawliet8886/RPA/constants"
)

// Shift is one worked period for a worker.
type Shift struct {
	ID       uuid.UUID             `json:"id"`
	WorkerID uuid.UUID             `json:"worker_id"`
	DateISO  string                `json:"date_iso"` // yyyy-MM-dd
	Hours    int                   `json:"hours"`
	Period   constants.ShiftPeriod `json:"period"`
}

// Date parses the shift's calendar date.
func (s Shift) Date() (time.Time, error) {
	return time.Parse("2006-01-02", s.DateISO)
}

// PriceRule is the fee for one role x period x hour-count combination.
// The rule set is shared configuration, uniquely keyed by Key().
type PriceRule struct {
	ID     uuid.UUID             `json:"id"`
	Funcao string                `json:"funcao"`
	Period constants.ShiftPeriod `json:"period"`
	Hours  int                   `json:"hours"`
	Value  decimal.Decimal       `json:"value"`
}

// PriceKey identifies a price rule; later imports upsert by this key.
type PriceKey struct {
	Funcao string
	Period constants.ShiftPeriod
	Hours  int
}

func (r PriceRule) Key() PriceKey {
	return PriceKey{Funcao: r.Funcao, Period: r.Period, Hours: r.Hours}
}

// ImportedPriceRule is a pre-merge rule candidate extracted from a spreadsheet.
type ImportedPriceRule struct {
	Funcao string
	Period constants.ShiftPeriod
	Hours  int
	Value  decimal.Decimal
}
