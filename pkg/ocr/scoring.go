package ocr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate is one amount-looking substring with the line it came from.
type Candidate struct {
	Raw    string
	Line   string
	Amount decimal.Decimal
}

// totalKeywords mark the line that normally carries the receipt total.
var totalKeywords = []string{"total", "a payer", "à payer", "montant", "somme"}

// paymentKeywords mark the tendered/payment line, a slightly weaker signal
// (cash lines can include change given).
var paymentKeywords = []string{"cb", "carte", "paiement", "espece", "espèce"}

func scoreCandidate(c Candidate) int {
	s := 0
	line := strings.ToLower(c.Line)
	for _, kw := range totalKeywords {
		if strings.Contains(line, kw) {
			s += 10
			break
		}
	}
	for _, kw := range paymentKeywords {
		if strings.Contains(line, kw) {
			s += 4
			break
		}
	}
	if strings.Contains(line, "€") || strings.Contains(line, "eur") {
		s += 3
	}
	return s
}

// BestCandidate picks the most plausible receipt total: highest keyword
// score, ties broken by the larger amount (item lines are smaller than the
// total), then by the longer raw match.
func BestCandidate(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	bestScore := scoreCandidate(best)
	for _, c := range cands[1:] {
		sc := scoreCandidate(c)
		switch {
		case sc > bestScore:
			best, bestScore = c, sc
		case sc == bestScore && c.Amount.GreaterThan(best.Amount):
			best = c
		case sc == bestScore && c.Amount.Equal(best.Amount) && len(c.Raw) > len(best.Raw):
			best = c
		}
	}
	return best, true
}

// Confidence maps the winning score to a rough 0..1 figure callers can
// threshold on.
func Confidence(c Candidate) float64 {
	sc := scoreCandidate(c)
	if sc >= 13 {
		return 0.9
	}
	if sc >= 10 {
		return 0.7
	}
	if sc >= 3 {
		return 0.4
	}
	return 0.2
}
