package checksum

// PIS/PASEP/NIT check-digit weights over the first ten digits.
var pisWeights = [10]int{3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// ValidPIS reports whether the input carries a valid PIS/PASEP checksum.
func ValidPIS(raw string) bool {
	d := digitsOnly(raw)
	if len(d) != 11 {
		return false
	}
	if allSameDigit(d) {
		return false
	}
	sum := 0
	for i := 0; i < 10; i++ {
		sum += int(d[i]-'0') * pisWeights[i]
	}
	remainder := sum % 11
	dv := 0
	if remainder >= 2 {
		dv = 11 - remainder
	}
	return dv == int(d[10]-'0')
}

// FormatPIS renders the canonical punctuated form 000.00000.00-0.
// Input that does not strip to exactly 11 digits is passed through unchanged.
func FormatPIS(raw string) string {
	d := digitsOnly(raw)
	if len(d) != 11 {
		return raw
	}
	return d[0:3] + "." + d[3:8] + "." + d[8:10] + "-" + d[10:11]
}
