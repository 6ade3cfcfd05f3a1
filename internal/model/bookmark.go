package model

import "time"

type Bookmark struct {
	ID         uint       `gorm:"primarykey"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_bookmarks_user_target"`
	TargetKind TargetKind `gorm:"not null;uniqueIndex:idx_bookmarks_user_target"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_bookmarks_user_target"`
	CreatedAt  time.Time
}
