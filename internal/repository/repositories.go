package repository

import (
	"context"

	"github.com/answerhub/backend/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	User() UserRepository
	Vote() VoteRepository
	Target() TargetRepository
	Question() QuestionRepository
	Bookmark() BookmarkRepository

	// Transaction runs fn against repositories bound to a single database
	// transaction; fn returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repositories) error) error
}

type repositories struct {
	db                 *gorm.DB
	userRepository     UserRepository
	voteRepository     VoteRepository
	targetRepository   TargetRepository
	questionRepository QuestionRepository
	bookmarkRepository BookmarkRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.Comment{},
		&model.Vote{},
		&model.Bookmark{},
	)
	if err != nil {
		logrus.Panic(err)
	}
	return newRepositories(db)
}

func newRepositories(db *gorm.DB) Repositories {
	return &repositories{
		db:                 db,
		userRepository:     newUserRepository(db),
		voteRepository:     newVoteRepository(db),
		targetRepository:   newTargetRepository(db),
		questionRepository: newQuestionRepository(db),
		bookmarkRepository: newBookmarkRepository(db),
	}
}

func (r *repositories) User() UserRepository {
	return r.userRepository
}

func (r *repositories) Vote() VoteRepository {
	return r.voteRepository
}

func (r *repositories) Target() TargetRepository {
	return r.targetRepository
}

func (r *repositories) Question() QuestionRepository {
	return r.questionRepository
}

func (r *repositories) Bookmark() BookmarkRepository {
	return r.bookmarkRepository
}

func (r *repositories) Transaction(ctx context.Context, fn func(tx Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}
