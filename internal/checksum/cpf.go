// Package checksum validates the two 11-digit Brazilian identifier schemes
// the compliance rules depend on: CPF and PIS/PASEP. Both compute check
// digits from weighted sums modulo 11; both reject the degenerate
// repeated-digit sequences ("000.000.000-00" and friends) outright.
package checksum

import "strings"

// ValidCPF reports whether the input carries a valid CPF checksum.
// Non-digit characters are stripped first; anything that does not leave
// exactly 11 digits is invalid. Never panics on malformed input.
func ValidCPF(raw string) bool {
	d := digitsOnly(raw)
	if len(d) != 11 {
		return false
	}
	if allSameDigit(d) {
		return false
	}
	dv1 := cpfDigit(d[:9], 10)
	dv2 := cpfDigit(d[:10], 11)
	return int(d[9]-'0') == dv1 && int(d[10]-'0') == dv2
}

func cpfDigit(part string, weightStart int) int {
	sum := 0
	weight := weightStart
	for _, ch := range part {
		sum += int(ch-'0') * weight
		weight--
	}
	mod := sum % 11
	if mod < 2 {
		return 0
	}
	return 11 - mod
}

// FormatCPF renders the canonical punctuated form 000.000.000-00.
// Input that does not strip to exactly 11 digits is passed through unchanged.
func FormatCPF(raw string) string {
	d := digitsOnly(raw)
	if len(d) != 11 {
		return raw
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
