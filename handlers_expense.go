package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"depenses/models"
	"depenses/pkg/aggregate"
	"depenses/pkg/pdfexport"
)

// parseExpenseDate accepts the date formats clients actually send.
func parseExpenseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// listExpensesHandler returns the whole household pool grouped into months,
// newest month first. Totals are recomputed from the rows on every call.
func (a *App) listExpensesHandler(c *gin.Context) {
	var expenses []models.Expense
	if err := a.db.Order("date desc").Find(&expenses).Error; err != nil {
		a.log.Error("list expenses", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	months := aggregate.GroupByMonth(expenses)
	aggregate.SortDesc(months)
	c.JSON(http.StatusOK, gin.H{"success": true, "expenseMonths": months})
}

func (a *App) createExpenseHandler(c *gin.Context) {
	user := currentUser(c)
	var req struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description" binding:"required"`
		Date        string          `json:"date" binding:"required"`
		Category    string          `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "amount must be a positive number"})
		return
	}
	date, err := parseExpenseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid date"})
		return
	}
	expense := models.Expense{
		UserID:      user.ID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        date,
	}
	if err := a.db.Create(&expense).Error; err != nil {
		a.log.Error("create expense", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "expense": expense})
}

// loadOwnedExpense fetches an expense and checks the caller may mutate it.
func (a *App) loadOwnedExpense(c *gin.Context, idParam string) (*models.Expense, bool) {
	user := currentUser(c)
	id, err := parseUintParam(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return nil, false
	}
	var expense models.Expense
	if err := a.db.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "expense not found"})
		return nil, false
	}
	if expense.UserID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "not your expense"})
		return nil, false
	}
	return &expense, true
}

func (a *App) updateExpenseHandler(c *gin.Context) {
	expense, ok := a.loadOwnedExpense(c, c.Param("id"))
	if !ok {
		return
	}
	var req struct {
		Amount      *decimal.Decimal `json:"amount"`
		Description *string          `json:"description"`
		Date        *string          `json:"date"`
		Category    *string          `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "amount must be a positive number"})
			return
		}
		expense.Amount = *req.Amount
	}
	if req.Description != nil {
		if *req.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "description must not be empty"})
			return
		}
		expense.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid date"})
			return
		}
		expense.Date = date
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if err := a.db.Save(expense).Error; err != nil {
		a.log.Error("update expense", "id", expense.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "expense": expense})
}

func (a *App) deleteExpenseHandler(c *gin.Context) {
	expense, ok := a.loadOwnedExpense(c, c.Param("id"))
	if !ok {
		return
	}
	if err := a.db.Delete(expense).Error; err != nil {
		a.log.Error("delete expense", "id", expense.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "expense deleted"})
}

// bulkDeleteResult tags each requested id with its own outcome so partial
// failure is reported precisely instead of as one boolean.
type bulkDeleteResult struct {
	ID      uint   `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// bulkDeleteExpensesHandler deletes best-effort, continuing past individual
// failures.
func (a *App) bulkDeleteExpensesHandler(c *gin.Context) {
	user := currentUser(c)
	var req struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	results := make([]bulkDeleteResult, 0, len(req.IDs))
	deleted, failed := 0, 0
	for _, id := range req.IDs {
		var expense models.Expense
		if err := a.db.First(&expense, id).Error; err != nil {
			results = append(results, bulkDeleteResult{ID: id, Error: "not found"})
			failed++
			continue
		}
		if expense.UserID != user.ID && !user.IsAdmin {
			results = append(results, bulkDeleteResult{ID: id, Error: "not your expense"})
			failed++
			continue
		}
		if err := a.db.Delete(&expense).Error; err != nil {
			results = append(results, bulkDeleteResult{ID: id, Error: "delete failed"})
			failed++
			continue
		}
		results = append(results, bulkDeleteResult{ID: id, Success: true})
		deleted++
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results, "deleted": deleted, "failed": failed})
}

// exportExpensesHandler streams a PDF of one month (?month=YYYY-MM) or of
// the full history.
func (a *App) exportExpensesHandler(c *gin.Context) {
	monthKey := c.Query("month")
	q := a.db.Order("date asc")
	title := "Household expenses"
	filename := "expenses.pdf"
	if monthKey != "" {
		if _, err := time.Parse("2006-01", monthKey); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "month must be YYYY-MM"})
			return
		}
		title = "Household expenses " + monthKey
		filename = "expenses-" + monthKey + ".pdf"
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		a.log.Error("export expenses", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	months := aggregate.GroupByMonth(expenses)
	aggregate.SortDesc(months)
	if monthKey != "" {
		filtered := months[:0]
		for _, m := range months {
			if m.Month == monthKey {
				filtered = append(filtered, m)
			}
		}
		months = filtered
	}

	var budgetRows []models.MonthlyBudget
	if err := a.db.Find(&budgetRows).Error; err != nil {
		a.log.Error("export budgets", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	budgets := make(map[string]*models.MonthlyBudget, len(budgetRows))
	for i := range budgetRows {
		budgets[budgetRows[i].Month] = &budgetRows[i]
	}

	out, err := pdfexport.Render(title, months, budgets)
	if err != nil {
		a.log.Error("render pdf", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", out)
}

// parseUintParam is shared by the :id routes.
func parseUintParam(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(v), nil
}
