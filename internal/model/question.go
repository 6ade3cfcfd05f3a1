package model

import "time"

type Question struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AuthorID  uint   `gorm:"not null"`
	Title     string `gorm:"not null"`
	Body      string
	VoteCount int `gorm:"not null;default:0"`
	// BestAnswerID is the accepted answer mark; nil means no best answer.
	BestAnswerID *uint
}

type Answer struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	QuestionID uint `gorm:"not null;index"`
	AuthorID   uint `gorm:"not null"`
	Body       string
	VoteCount  int `gorm:"not null;default:0"`
}

type Comment struct {
	ID         uint `gorm:"primarykey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	QuestionID *uint
	AnswerID   *uint
	AuthorID   uint `gorm:"not null"`
	Body       string
	VoteCount  int `gorm:"not null;default:0"`
}
