package repository

import (
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"gorm.io/gorm"
)

type VoteRepository interface {
	FindByVoterAndTarget(voterID uint, kind model.TargetKind, targetID uint) (model.Vote, error)
	Create(vote model.Vote) (model.Vote, error)
	Save(vote model.Vote) (model.Vote, error)
	Delete(id uint) error
	// SumDirections returns the live sum of vote directions for a target,
	// the value the target's counter must always equal.
	SumDirections(kind model.TargetKind, targetID uint) (int, error)
}

type vote struct {
	db *gorm.DB
}

func newVoteRepository(db *gorm.DB) VoteRepository {
	return &vote{
		db: db,
	}
}

func (v *vote) FindByVoterAndTarget(voterID uint, kind model.TargetKind, targetID uint) (model.Vote, error) {
	var record model.Vote
	result := v.db.
		Where("voter_id = ? AND target_kind = ? AND target_id = ?", voterID, kind, targetID).
		First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Vote{}, fmt.Errorf("%w: vote by user %d on %s %d", dto.ErrNotFound, voterID, kind, targetID)
		}
		return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (v *vote) Create(record model.Vote) (model.Vote, error) {
	result := v.db.Create(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrConflict, result.Error)
		}
		return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (v *vote) Save(record model.Vote) (model.Vote, error) {
	result := v.db.Save(&record)
	if result.Error != nil {
		return model.Vote{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (v *vote) Delete(id uint) error {
	result := v.db.Delete(&model.Vote{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: vote %d", dto.ErrNotFound, id)
	}

	return nil
}

func (v *vote) SumDirections(kind model.TargetKind, targetID uint) (int, error) {
	var sum int64
	result := v.db.Model(&model.Vote{}).
		Where("target_kind = ? AND target_id = ?", kind, targetID).
		Select("COALESCE(SUM(direction), 0)").
		Scan(&sum)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return int(sum), nil
}
