package repository

import (
	"errors"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id uint) (model.User, error)
	GetByFirebaseUID(uid string) (model.User, error)
	Create(user model.User) (model.User, error)
	Save(user model.User) (model.User, error)
	// AdjustReputation applies a relative point delta to one account.
	AdjustReputation(id uint, points int) error
}

type user struct {
	db *gorm.DB
}

func newUserRepository(db *gorm.DB) UserRepository {
	return &user{
		db: db,
	}
}

func (u *user) GetByID(id uint) (model.User, error) {
	var record model.User
	result := u.db.First(&record, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (u *user) GetByFirebaseUID(uid string) (model.User, error) {
	var record model.User
	result := u.db.Where("firebase_uid = ?", uid).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.User{}, fmt.Errorf("%w: firebase uid %s", dto.ErrNotFound, uid)
		}
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (u *user) Create(record model.User) (model.User, error) {
	result := u.db.Create(&record)
	if result.Error != nil {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (u *user) Save(record model.User) (model.User, error) {
	result := u.db.Save(&record)
	if result.Error != nil {
		return model.User{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return record, nil
}

func (u *user) AdjustReputation(id uint, points int) error {
	result := u.db.Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("reputation", gorm.Expr("reputation + ?", points))
	if result.Error != nil {
		return fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
	}

	return nil
}
