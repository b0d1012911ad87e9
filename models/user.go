package models

import (
	"time"
)

// User is a household member account. PasswordHash is never serialized.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
	Email        string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string     `gorm:"size:255;not null;uniqueIndex" json:"username"`
	FullName     string     `gorm:"size:255;not null" json:"fullName"`
	PasswordHash []byte     `gorm:"not null" json:"-"`
	IsAdmin      bool       `gorm:"default:false;not null" json:"isAdmin"`
	Expenses     []Expense  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
