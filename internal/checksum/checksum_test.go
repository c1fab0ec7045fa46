package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"111.444.777-35",
	}
	for _, s := range valid {
		assert.True(t, ValidCPF(s), s)
	}

	invalid := []string{
		"",
		"5299822472",     // too short
		"529982247255",   // too long
		"52998224726",    // first check digit flipped
		"52998224735",    // second check digit flipped
		"00000000000",    // degenerate
		"11111111111",    // degenerate
		"529.982.247-2X", // non-digit leaves 10 digits
		"abc",
	}
	for _, s := range invalid {
		assert.False(t, ValidCPF(s), s)
	}
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "529.982.247-25", FormatCPF("52998224725"))
	assert.Equal(t, "529.982.247-25", FormatCPF("529.982.247-25"))
	// not 11 digits: passthrough
	assert.Equal(t, "1234", FormatCPF("1234"))
	assert.Equal(t, "", FormatCPF(""))
}

func TestValidPIS(t *testing.T) {
	valid := []string{
		"12345678900",
		"123.45678.90-0",
		"12028747104",
	}
	for _, s := range valid {
		assert.True(t, ValidPIS(s), s)
	}

	invalid := []string{
		"",
		"12345678901", // check digit flipped
		"12028747105", // check digit flipped
		"1202874710",  // too short
		"00000000000", // degenerate
	}
	for _, s := range invalid {
		assert.False(t, ValidPIS(s), s)
	}
}

func TestFormatPISRoundTrip(t *testing.T) {
	formatted := FormatPIS("12028747104")
	assert.Equal(t, "120.28747.10-4", formatted)

	// formatted -> stripped digits -> format is the identical punctuated string
	assert.Equal(t, formatted, FormatPIS(formatted))

	// not 11 digits: passthrough
	assert.Equal(t, "987", FormatPIS("987"))
}
