package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"depenses/models"
	"depenses/pkg/aggregate"
)

func TestRenderProducesPDF(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2024-03-05")
	months := []aggregate.Month{{
		Month: "2024-03",
		Year:  2024,
		Expenses: []models.Expense{
			{Amount: decimal.NewFromFloat(100), Description: "groceries", Category: "food", Date: date},
		},
		Total: decimal.NewFromFloat(100),
	}}
	budgets := map[string]*models.MonthlyBudget{
		"2024-03": {Month: "2024-03", Year: 2024, InitialCapital: decimal.NewFromInt(500)},
	}
	out, err := Render("Expenses 2024-03", months, budgets)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF (first bytes %q)", out[:8])
	}
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render("Expenses", nil, nil)
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("empty output")
	}
}
