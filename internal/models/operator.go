package models

import (
	"time"

	"gorm.io/gorm"
)

// Operator is a staff account allowed to use the admin routes.
type Operator struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	TokenVersion int    `gorm:"default:1"`
	LastLoginAt  *time.Time
}
