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
)

func parseMonthYear(c *gin.Context) (string, int, error) {
	month := c.Query("month")
	yearStr := c.Query("year")
	if month == "" || yearStr == "" {
		return "", 0, fmt.Errorf("month and year are required")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return "", 0, fmt.Errorf("month must be YYYY-MM")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return "", 0, fmt.Errorf("year must be a number")
	}
	return month, year, nil
}

// getBudgetHandler returns the shared household budget for one month plus
// its reconciliation against that month's spend. A missing budget is not an
// error: the client renders the undefined-budget state.
func (a *App) getBudgetHandler(c *gin.Context) {
	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	var budget models.MonthlyBudget
	if err := a.db.Where("month = ? AND year = ?", month, year).First(&budget).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "budget": nil})
		return
	}

	var expenses []models.Expense
	if err := a.db.Find(&expenses).Error; err != nil {
		a.log.Error("load expenses for budget", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	total := decimal.Zero
	for _, m := range aggregate.GroupByMonth(expenses) {
		if m.Month == month {
			total = m.Total
			break
		}
	}
	status := aggregate.Reconcile(total, &budget)
	c.JSON(http.StatusOK, gin.H{"success": true, "budget": budget, "status": status, "monthTotal": total})
}

// upsertBudgetHandler creates or overwrites the (month, year) budget.
// Last writer wins; there is no concurrency token.
func (a *App) upsertBudgetHandler(c *gin.Context) {
	user := currentUser(c)
	var req struct {
		Month          string          `json:"month" binding:"required"`
		Year           int             `json:"year" binding:"required"`
		InitialCapital decimal.Decimal `json:"initialCapital"`
		Description    string          `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "month must be YYYY-MM"})
		return
	}
	if !req.InitialCapital.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "initial capital must be a positive number"})
		return
	}

	var budget models.MonthlyBudget
	err := a.db.Where("month = ? AND year = ?", req.Month, req.Year).First(&budget).Error
	created := err != nil
	if created {
		budget = models.MonthlyBudget{Month: req.Month, Year: req.Year, CreatedBy: user.ID}
	}
	budget.InitialCapital = req.InitialCapital
	budget.Description = req.Description
	if err := a.db.Save(&budget).Error; err != nil {
		a.log.Error("save budget", "month", req.Month, "year", req.Year, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	message := "budget updated"
	if created {
		message = "budget created"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "budget": budget, "message": message})
}

func (a *App) deleteBudgetHandler(c *gin.Context) {
	month, year, err := parseMonthYear(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	var budget models.MonthlyBudget
	if err := a.db.Where("month = ? AND year = ?", month, year).First(&budget).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "budget not found"})
		return
	}
	if err := a.db.Delete(&budget).Error; err != nil {
		a.log.Error("delete budget", "month", month, "year", year, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "budget deleted"})
}
