package ocr

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoAmount is returned when no plausible monetary amount can be extracted.
var ErrNoAmount = errors.New("no amount detected")

// amountRE matches euro-style amounts as they appear on till receipts:
// "12,34", "1 234,56", "1.234,56", "1234.56", optionally followed by a
// currency marker. Thousands groups use dot or space, cents use comma or dot.
var amountRE = regexp.MustCompile(`(\d{1,4}(?:[ .]\d{3})*[,.]\d{2})(?:\s*(?:€|eur))?`)

// FindAmountCandidates scans OCR text for substrings that look like amounts.
// The surrounding line is kept with each candidate so scoring can use
// keyword context (TOTAL, A PAYER, CB).
func FindAmountCandidates(text string) []Candidate {
	var out []Candidate
	for _, line := range strings.Split(text, "\n") {
		norm := strings.Join(strings.Fields(line), " ")
		if norm == "" {
			continue
		}
		for _, m := range amountRE.FindAllStringSubmatch(strings.ToLower(norm), -1) {
			amt, err := ParseAmount(m[1])
			if err != nil {
				continue
			}
			out = append(out, Candidate{Raw: m[1], Line: norm, Amount: amt})
		}
	}
	return out
}

// ParseAmount normalizes one matched substring into a decimal amount.
// The final two digits after the last separator are the cents; any earlier
// dots and spaces are thousands grouping ("1.234,56" -> 1234.56).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrNoAmount
	}
	sep := strings.LastIndexAny(s, ",.")
	if sep == -1 || len(s)-sep != 3 {
		return decimal.Zero, ErrNoAmount
	}
	intPart := onlyDigits(s[:sep])
	centPart := s[sep+1:]
	if intPart == "" || len(centPart) != 2 {
		return decimal.Zero, ErrNoAmount
	}
	d, err := decimal.NewFromString(intPart + "." + centPart)
	if err != nil {
		return decimal.Zero, ErrNoAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNoAmount
	}
	return d, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
