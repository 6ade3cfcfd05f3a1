package repository

import (
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"gorm.io/gorm"
)

// TargetRef is the slice of a votable entity the ledger needs: who owns it
// and its current counter.
type TargetRef struct {
	OwnerID   uint
	VoteCount int
}

type TargetRepository interface {
	Get(kind model.TargetKind, id uint) (TargetRef, error)
	// AdjustVoteCount applies a relative delta to the target's counter and
	// returns the new value.
	AdjustVoteCount(kind model.TargetKind, id uint, delta int) (int, error)
}

type target struct {
	db *gorm.DB
}

func newTargetRepository(db *gorm.DB) TargetRepository {
	return &target{
		db: db,
	}
}

func (t *target) Get(kind model.TargetKind, id uint) (TargetRef, error) {
	modelFor, err := targetModel(kind)
	if err != nil {
		return TargetRef{}, err
	}

	var ref struct {
		AuthorID  uint
		VoteCount int
	}
	result := t.db.Model(modelFor).
		Select("author_id", "vote_count").
		Where("id = ?", id).
		Take(&ref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TargetRef{}, fmt.Errorf("%w: %s %d", dto.ErrNotFound, kind, id)
		}
		return TargetRef{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return TargetRef{OwnerID: ref.AuthorID, VoteCount: ref.VoteCount}, nil
}

func (t *target) AdjustVoteCount(kind model.TargetKind, id uint, delta int) (int, error) {
	modelFor, err := targetModel(kind)
	if err != nil {
		return 0, err
	}

	result := t.db.Model(modelFor).
		Where("id = ?", id).
		UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta))
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: %s %d", dto.ErrNotFound, kind, id)
	}

	var count int
	result = t.db.Model(modelFor).
		Select("vote_count").
		Where("id = ?", id).
		Take(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return count, nil
}

func targetModel(kind model.TargetKind) (interface{}, error) {
	switch kind {
	case model.TargetQuestion:
		return &model.Question{}, nil
	case model.TargetAnswer:
		return &model.Answer{}, nil
	case model.TargetComment:
		return &model.Comment{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}
}
