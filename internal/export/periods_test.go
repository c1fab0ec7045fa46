package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/entity"
)

func shiftOn(date string) entity.Shift {
	return entity.Shift{DateISO: date, Hours: 12, Period: constants.ShiftDay}
}

func TestGroupByPeriodHalvesAtDay15(t *testing.T) {
	groups := GroupByPeriod([]entity.Shift{
		shiftOn("2026-03-15"),
		shiftOn("2026-03-16"),
		shiftOn("2026-03-02"),
	})
	require.Len(t, groups, 2)

	assert.Equal(t, BillingPeriod{Year: 2026, Month: time.March, Half: 1}, groups[0].Period)
	assert.Len(t, groups[0].Shifts, 2)
	assert.Equal(t, "2026-03-02", groups[0].Shifts[0].DateISO)
	assert.Equal(t, "2026-03-15", groups[0].Shifts[1].DateISO)

	assert.Equal(t, BillingPeriod{Year: 2026, Month: time.March, Half: 2}, groups[1].Period)
}

func TestGroupByPeriodOrdersAcrossMonths(t *testing.T) {
	groups := GroupByPeriod([]entity.Shift{
		shiftOn("2026-04-01"),
		shiftOn("2025-12-20"),
		shiftOn("2026-04-18"),
	})
	require.Len(t, groups, 3)
	assert.Equal(t, 2025, groups[0].Period.Year)
	assert.Equal(t, BillingPeriod{Year: 2026, Month: time.April, Half: 1}, groups[1].Period)
	assert.Equal(t, BillingPeriod{Year: 2026, Month: time.April, Half: 2}, groups[2].Period)
}

func TestGroupByPeriodDropsBadDates(t *testing.T) {
	groups := GroupByPeriod([]entity.Shift{shiftOn("16/03/2026"), shiftOn("2026-03-10")})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Shifts, 1)
}

func TestSubmissionDateFirstHalf(t *testing.T) {
	// August 2025: the 16th is a Saturday, so the order goes out Monday the 18th
	got := SubmissionDate(BillingPeriod{Year: 2025, Month: time.August, Half: 1})
	assert.Equal(t, "2025-08-18", got.Format("2006-01-02"))

	// March 2026: the 16th is a Monday and already a business day
	got = SubmissionDate(BillingPeriod{Year: 2026, Month: time.March, Half: 1})
	assert.Equal(t, "2026-03-16", got.Format("2006-01-02"))
}

func TestSubmissionDateSecondHalf(t *testing.T) {
	// October 2025 second half: November 1st is a Saturday, due Monday the 3rd
	got := SubmissionDate(BillingPeriod{Year: 2025, Month: time.October, Half: 2})
	assert.Equal(t, "2025-11-03", got.Format("2006-01-02"))

	// December second half rolls into January of the next year
	got = SubmissionDate(BillingPeriod{Year: 2025, Month: time.December, Half: 2})
	assert.Equal(t, "2026-01-01", got.Format("2006-01-02"))
}

func TestDocBase(t *testing.T) {
	p := BillingPeriod{Year: 2026, Month: time.March, Half: 2}
	assert.Equal(t, "OS_2026_03_P2", p.DocBase())
}
