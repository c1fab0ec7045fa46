package extract

import (
	"regexp"
	"strings"
)

// BankFields holds label-anchored bank data found in recognized text.
type BankFields struct {
	Agencia string
	Conta   string
	Titular string
}

var (
	reAgencia = regexp.MustCompile(`(?i)\b(ag[êe]?ncia|ag)\s*[:\-]?\s*(\d{2,5})\b`)
	reConta   = regexp.MustCompile(`(?i)\b(conta|c/c|cc)\s*[:\-]?\s*([0-9]{3,15}[\-.]?[0-9xX]?)\b`)
	reTitular = regexp.MustCompile(`(?i)\b(titular|nome)\s*[:\-]?\s*([A-ZÀ-Ü][A-ZÀ-Ü ]{5,})`)
)

// FindBank extracts agency, account and holder name. The holder falls back to
// the first plausible all-uppercase line when no label matches; bank app
// screenshots usually render the holder in caps near the top.
func FindBank(text string) BankFields {
	flat := strings.NewReplacer("\n", " ", "\t", " ", "  ", " ").Replace(text)

	var out BankFields
	if m := reAgencia.FindStringSubmatch(flat); m != nil {
		out.Agencia = m[2]
	}
	if m := reConta.FindStringSubmatch(flat); m != nil {
		out.Conta = m[2]
	}
	if m := reTitular.FindStringSubmatch(flat); m != nil {
		out.Titular = truncateRunes(strings.TrimSpace(m[2]), 60)
	}
	if out.Titular == "" {
		out.Titular = guessHolderName(text)
	}
	return out
}

func guessHolderName(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		n := len([]rune(line))
		if n < 8 || n > 60 {
			continue
		}
		if countLetters(line) < 6 {
			continue
		}
		if line != strings.ToUpper(line) {
			continue
		}
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "BANCO") || strings.Contains(upper, "AG") || strings.Contains(upper, "CONTA") {
			continue
		}
		return truncateRunes(line, 60)
	}
	return ""
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r >= 0x00C0 {
			n++
		}
	}
	return n
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
