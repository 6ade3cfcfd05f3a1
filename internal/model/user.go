package model

import (
	"gorm.io/gorm"
	"time"
)

type User struct {
	ID          uint   `gorm:"primarykey"`
	FirebaseUID string `gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	DisplayName *string
	Email       string `gorm:"not null"`
	// Reputation is mutated only through named point events, never ad hoc.
	// It may go negative.
	Reputation int `gorm:"not null;default:0"`
}
