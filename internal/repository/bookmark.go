package repository

import (
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"gorm.io/gorm"
)

type BookmarkRepository interface {
	FindByUserAndTarget(userID uint, kind model.TargetKind, targetID uint) (model.Bookmark, error)
	Create(bookmark model.Bookmark) (model.Bookmark, error)
	Delete(id uint) error
}

type bookmark struct {
	db *gorm.DB
}

func newBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmark{
		db: db,
	}
}

func (b *bookmark) FindByUserAndTarget(userID uint, kind model.TargetKind, targetID uint) (model.Bookmark, error) {
	var record model.Bookmark
	result := b.db.
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, kind, targetID).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Bookmark{}, fmt.Errorf("%w: bookmark by user %d on %s %d", dto.ErrNotFound, userID, kind, targetID)
		}
		return model.Bookmark{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (b *bookmark) Create(record model.Bookmark) (model.Bookmark, error) {
	result := b.db.Create(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.Bookmark{}, fmt.Errorf("%w: %v", dto.ErrConflict, result.Error)
		}
		return model.Bookmark{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (b *bookmark) Delete(id uint) error {
	result := b.db.Delete(&model.Bookmark{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: bookmark %d", dto.ErrNotFound, id)
	}

	return nil
}
