package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
)

type BookmarkService interface {
	// Toggle adds the bookmark if absent and removes it otherwise; the
	// returned bool reports whether the bookmark now exists.
	Toggle(ctx context.Context, userID uint, kind model.TargetKind, targetID uint) (bool, error)
}

type bookmarkService struct {
	repositories repository.Repositories
}

func newBookmarkService(repositories repository.Repositories) BookmarkService {
	return &bookmarkService{
		repositories: repositories,
	}
}

func (s *bookmarkService) Toggle(ctx context.Context, userID uint, kind model.TargetKind, targetID uint) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}
	if _, err := s.repositories.Target().Get(kind, targetID); err != nil {
		return false, err
	}

	added, err := s.toggleOnce(ctx, userID, kind, targetID)
	if errors.Is(err, dto.ErrConflict) {
		added, err = s.toggleOnce(ctx, userID, kind, targetID)
	}
	return added, err
}

func (s *bookmarkService) toggleOnce(ctx context.Context, userID uint, kind model.TargetKind, targetID uint) (bool, error) {
	var added bool
	err := s.repositories.Transaction(ctx, func(tx repository.Repositories) error {
		existing, err := tx.Bookmark().FindByUserAndTarget(userID, kind, targetID)
		if errors.Is(err, dto.ErrNotFound) {
			_, err := tx.Bookmark().Create(model.Bookmark{
				UserID:     userID,
				TargetKind: kind,
				TargetID:   targetID,
				CreatedAt:  time.Now().UTC(),
			})
			added = true
			return err
		}
		if err != nil {
			return err
		}

		added = false
		return tx.Bookmark().Delete(existing.ID)
	})
	return added, err
}
