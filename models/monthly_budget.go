package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBudget is the household's shared budget for one calendar month.
// Exactly one record exists per (month, year); upserts are last-writer-wins.
type MonthlyBudget struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Month          string          `gorm:"size:7;not null;uniqueIndex:idx_budget_month_year" json:"month"` // YYYY-MM
	Year           int             `gorm:"not null;uniqueIndex:idx_budget_month_year" json:"year"`
	InitialCapital decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"initialCapital"`
	Description    string          `gorm:"size:512" json:"description,omitempty"`
	CreatedBy      uint            `gorm:"index" json:"createdBy"`
}
