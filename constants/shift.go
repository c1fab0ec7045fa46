package constants

// ShiftPeriod tags a worked period as a day or night shift. Price rules are
// keyed by period, so the importer normalizes sheet wording onto these two.
type ShiftPeriod string

const (
	ShiftDay   ShiftPeriod = "DIA"
	ShiftNight ShiftPeriod = "NOITE"
)
