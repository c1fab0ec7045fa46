// Package extract turns raw recognized text into candidate structured values.
// Every finder is a pure function over text; candidates are only accepted when
// the relevant checksum or date parse succeeds. Merge applies the
// first-extraction-wins policy against an immutable snapshot.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	reCPFPunct = regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`)
	rePISPunct = regexp.MustCompile(`\b\d{3}\.\d{5}\.\d{2}-\d\b`)
	reBareID   = regexp.MustCompile(`\b\d{11}\b`)
	reDate     = regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`)
	reMesAno   = regexp.MustCompile(`\b(0?[1-9]|1[0-2])[/-](\d{4})\b`)
)

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findValidID scans punctuated candidates first, then every bare 11-digit run,
// returning the first candidate the validator accepts.
func findValidID(text string, punct *regexp.Regexp, valid func(string) bool) (string, bool) {
	if m := punct.FindString(text); m != "" {
		if d := DigitsOnly(m); valid(d) {
			return d, true
		}
	}
	for _, m := range reBareID.FindAllString(text, -1) {
		if valid(m) {
			return m, true
		}
	}
	return "", false
}

// findLatestDate returns the latest plausible dd/MM/yyyy date in the text.
// Recognized documents often carry several dates; the issue date is the
// newest one. Returns the zero time when nothing parses.
func findLatestDate(text string) (time.Time, bool) {
	var best time.Time
	found := false
	for _, m := range reDate.FindAllStringSubmatch(text, -1) {
		d, err := time.Parse("02/01/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3]))
		if err != nil {
			continue
		}
		if !found || d.After(best) {
			best = d
			found = true
		}
	}
	return best, found
}

// findLatestMonthYear returns the latest MM/yyyy pair as canonical text.
func findLatestMonthYear(text string) (string, bool) {
	bestYear, bestMonth := 0, 0
	found := false
	for _, m := range reMesAno.FindAllStringSubmatch(text, -1) {
		var month, year int
		if _, err := fmt.Sscanf(m[1], "%d", &month); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(m[2], "%d", &year); err != nil {
			continue
		}
		if month < 1 || month > 12 {
			continue
		}
		if !found || year*12+month > bestYear*12+bestMonth {
			bestYear, bestMonth = year, month
			found = true
		}
	}
	if !found {
		return "", false
	}
	return fmt.Sprintf("%02d/%04d", bestMonth, bestYear), true
}

// nameAppearsIn reports whether any token of the worker's name with at least
// four characters occurs, case-insensitively, in the text. Used once to derive
// the "is the bill in the worker's own name" flag.
func nameAppearsIn(text, workerName string) bool {
	upper := strings.ToUpper(text)
	for _, tok := range strings.Fields(strings.ToUpper(workerName)) {
		if len([]rune(tok)) >= 4 && strings.Contains(upper, tok) {
			return true
		}
	}
	return false
}
