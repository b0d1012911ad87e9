package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded household expense belonging to a user.
// Amount is stored with two decimal places of precision.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	UserID      uint            `gorm:"index;not null" json:"createdBy"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Description string          `gorm:"size:512;not null" json:"description"`
	Category    string          `gorm:"size:128" json:"category,omitempty"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
}
