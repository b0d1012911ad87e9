// Package ocr extracts the total amount from a photographed till receipt.
// It runs Tesseract over a couple of preprocessed variants of the image and
// scores euro-style amount candidates by line context (TOTAL, payment
// keywords) before picking one.
package ocr

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"github.com/shopspring/decimal"
)

// Result is the outcome of one extraction.
type Result struct {
	Amount     decimal.Decimal
	Raw        string  // the matched substring, for audit
	Confidence float64 // rough 0..1, keyword-context based
}

// ExtractAmountFromImage OCRs the receipt at path and returns the best
// total-amount candidate. ErrNoAmount is returned when no candidate parses.
func ExtractAmountFromImage(path string) (Result, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open image: %w", err)
	}

	cleaned := prepare(img)
	tmp, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return Result{}, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)
	if err := imaging.Save(cleaned, tmpPath); err != nil {
		return Result{}, fmt.Errorf("save preprocessed image: %w", err)
	}

	var cands []Candidate
	// Preprocessed pass first, raw image as fallback for receipts where the
	// threshold eats thin print.
	for _, p := range []string{tmpPath, path} {
		text, err := runPass(p)
		if err != nil {
			continue
		}
		cands = append(cands, FindAmountCandidates(text)...)
	}

	best, ok := BestCandidate(cands)
	if !ok {
		return Result{}, ErrNoAmount
	}
	return Result{Amount: best.Amount, Raw: best.Raw, Confidence: Confidence(best)}, nil
}

func runPass(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("fra", "eng")
	_ = client.SetWhitelist("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyzÀàÉéÈè€.,:()/- ")
	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}
