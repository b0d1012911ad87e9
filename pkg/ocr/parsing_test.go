package ocr

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12,34", "12.34"},
		{"12.34", "12.34"},
		{"1 234,56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"0,99", "0.99"},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", c.in, err)
		}
		if got.String() != c.want {
			t.Fatalf("ParseAmount(%q) = %s want %s", c.in, got, c.want)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "1234", "12,3", "abc", "0,00"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestBestCandidatePrefersTotalLine(t *testing.T) {
	text := "BAGUETTE 1,20\nLAIT 2x 0,95 1,90\nTOTAL 3,10 €\nCB 3,10"
	cands := FindAmountCandidates(text)
	if len(cands) == 0 {
		t.Fatal("no candidates found")
	}
	best, ok := BestCandidate(cands)
	if !ok {
		t.Fatal("no best candidate")
	}
	if best.Amount.String() != "3.10" {
		t.Fatalf("best = %s (%q), want 3.10 from the TOTAL line", best.Amount, best.Line)
	}
	if Confidence(best) < 0.7 {
		t.Fatalf("total-line match should be high confidence, got %f", Confidence(best))
	}
}

func TestBestCandidateFallsBackToLargest(t *testing.T) {
	// No keyword context anywhere: the largest amount wins (item lines are
	// smaller than the sum).
	cands := FindAmountCandidates("1,20\n4,50\n2,15")
	best, ok := BestCandidate(cands)
	if !ok {
		t.Fatal("no best candidate")
	}
	if best.Amount.String() != "4.50" {
		t.Fatalf("best = %s, want 4.50", best.Amount)
	}
}
