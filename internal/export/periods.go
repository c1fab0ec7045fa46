package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/lawliet8886/RPA/internal/entity"
)

// BillingPeriod is one half of a calendar month: days 1-15 (half 1) or
// day 16 to month end (half 2). Service orders are issued per period.
type BillingPeriod struct {
	Year  int
	Month time.Month
	Half  int
}

func (p BillingPeriod) Label() string {
	return fmt.Sprintf("P%d", p.Half)
}

// DocBase is the file-name stem of the period's service-order documents.
func (p BillingPeriod) DocBase() string {
	return fmt.Sprintf("OS_%04d_%02d_%s", p.Year, int(p.Month), p.Label())
}

func periodOf(d time.Time) BillingPeriod {
	half := 1
	if d.Day() > 15 {
		half = 2
	}
	return BillingPeriod{Year: d.Year(), Month: d.Month(), Half: half}
}

// PeriodGroup is the shifts one worker performed inside one billing period.
type PeriodGroup struct {
	Period BillingPeriod
	Shifts []entity.Shift
}

// GroupByPeriod buckets shifts into billing periods, chronologically, with
// each bucket's shifts in date order. Shifts whose date does not parse are
// dropped.
func GroupByPeriod(shifts []entity.Shift) []PeriodGroup {
	buckets := make(map[BillingPeriod][]entity.Shift)
	for _, s := range shifts {
		d, err := s.Date()
		if err != nil {
			continue
		}
		p := periodOf(d)
		buckets[p] = append(buckets[p], s)
	}

	out := make([]PeriodGroup, 0, len(buckets))
	for p, items := range buckets {
		sort.Slice(items, func(i, j int) bool { return items[i].DateISO < items[j].DateISO })
		out = append(out, PeriodGroup{Period: p, Shifts: items})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Period, out[j].Period
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Half < b.Half
	})
	return out
}

// SubmissionDate is the day the period's service order is due: for the first
// half, the first business day strictly after the 15th; for the second half,
// the first business day of the following month.
func SubmissionDate(p BillingPeriod) time.Time {
	if p.Half == 1 {
		return nextBusinessDay(time.Date(p.Year, p.Month, 16, 0, 0, 0, 0, time.UTC))
	}
	return nextBusinessDay(time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0))
}

func nextBusinessDay(d time.Time) time.Time {
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
