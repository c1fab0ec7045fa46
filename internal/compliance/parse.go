package compliance

import (
	"strconv"
	"strings"
	"time"
)

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// parseMonthYear returns a comparable month index (year*12 + month).
func parseMonthYear(s string) (int, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "-", "/"))
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	month, err := strconv.Atoi(strings.TrimPrefix(parts[0], "0"))
	if err != nil {
		return 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if month < 1 || month > 12 {
		return 0, false
	}
	return year*12 + month, true
}
