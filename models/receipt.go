package models

import (
	"time"
)

// Receipt is an uploaded receipt image. When OCR extracts an amount the
// created Expense is linked via ExpenseID; otherwise the record is kept with
// Failed set so it can be reviewed instead of silently dropped.
type Receipt struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UserID       uint      `gorm:"index;not null;uniqueIndex:idx_receipt_user_file" json:"userId"`
	FileName     string    `gorm:"size:255;not null;uniqueIndex:idx_receipt_user_file" json:"fileName"`
	StorePath    string    `gorm:"column:store_path;size:512" json:"storePath"`
	ContentType  string    `gorm:"size:128" json:"contentType,omitempty"`
	ExpenseID    *uint     `gorm:"index" json:"expenseId,omitempty"`
	Failed       bool      `gorm:"default:false;index" json:"failed"`
	FailedReason string    `gorm:"size:255" json:"failedReason,omitempty"`
}
