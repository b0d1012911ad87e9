// Package pdfexport renders expense months into a downloadable PDF report:
// one section per month with a date/description/category/amount table, the
// month total, and the budget line when one is set.
package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"depenses/models"
	"depenses/pkg/aggregate"
)

const (
	colDate        = 28.0
	colDescription = 92.0
	colCategory    = 35.0
	colAmount      = 25.0
)

// Render produces the PDF for the given months (already sorted the way they
// should appear). budgets maps month key (YYYY-MM) to the household budget
// for that month; missing entries render as "no budget set".
func Render(title string, months []aggregate.Month, budgets map[string]*models.MonthlyBudget) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, m := range months {
		writeMonth(pdf, m, budgets[m.Month])
	}
	if len(months) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "No expenses recorded.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMonth(pdf *fpdf.Fpdf, m aggregate.Month, budget *models.MonthlyBudget) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, m.Month, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colDate, 7, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colDescription, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colCategory, 7, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colAmount, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range m.Expenses {
		pdf.CellFormat(colDate, 6, e.Date.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colDescription, 6, truncate(e.Description, 52), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colCategory, 6, truncate(e.Category, 18), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 6, formatAmount(e.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colDate+colDescription+colCategory, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 7, formatAmount(m.Total), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 10)
	if st := aggregate.Reconcile(m.Total, budget); st != nil {
		line := fmt.Sprintf("Budget %s - remaining %s (%s%% used)",
			formatAmount(budget.InitialCapital), formatAmount(st.Remaining), st.PercentageUsed.Round(1))
		if st.IsOverBudget {
			line += " - OVER BUDGET"
		}
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, "No budget set for this month.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
