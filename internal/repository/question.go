package repository

import (
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	GetByID(id uint) (model.Question, error)
	GetAnswer(id uint) (model.Answer, error)
	// SetBestAnswer writes the accepted-answer mark; nil clears it.
	SetBestAnswer(questionID uint, answerID *uint) error
}

type question struct {
	db *gorm.DB
}

func newQuestionRepository(db *gorm.DB) QuestionRepository {
	return &question{
		db: db,
	}
}

func (q *question) GetByID(id uint) (model.Question, error) {
	var record model.Question
	result := q.db.First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Question{}, fmt.Errorf("%w: question %d", dto.ErrNotFound, id)
		}
		return model.Question{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (q *question) GetAnswer(id uint) (model.Answer, error) {
	var record model.Answer
	result := q.db.First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Answer{}, fmt.Errorf("%w: answer %d", dto.ErrNotFound, id)
		}
		return model.Answer{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (q *question) SetBestAnswer(questionID uint, answerID *uint) error {
	result := q.db.Model(&model.Question{}).
		Where("id = ?", questionID).
		UpdateColumn("best_answer_id", answerID)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: question %d", dto.ErrNotFound, questionID)
	}

	return nil
}
