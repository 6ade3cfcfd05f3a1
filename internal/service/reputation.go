package service

import (
	"fmt"
	"sort"

	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
)

// ReputationService applies named point events to user accounts. A delta
// set from one logical operation is applied all-or-nothing inside the
// caller's transaction.
type ReputationService interface {
	ApplyDeltas(tx repository.Repositories, deltas []model.ReputationDelta) error
	AccountPoints(userID uint) (int, error)
}

type reputationService struct {
	userRepository repository.UserRepository
	accountLocks   *keyMutex
}

func newReputationService(userRepository repository.UserRepository) ReputationService {
	return &reputationService{
		userRepository: userRepository,
		accountLocks:   newKeyMutex(),
	}
}

func (r *reputationService) ApplyDeltas(tx repository.Repositories, deltas []model.ReputationDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	// Account locks are always taken in ascending id order; two operations
	// touching the same two accounts can never deadlock.
	ids := make([]uint, 0, len(deltas))
	seen := make(map[uint]bool, len(deltas))
	for _, delta := range deltas {
		if !seen[delta.AccountID] {
			seen[delta.AccountID] = true
			ids = append(ids, delta.AccountID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		r.accountLocks.Lock(accountKey(id))
	}
	defer func() {
		for _, id := range ids {
			r.accountLocks.Unlock(accountKey(id))
		}
	}()

	for _, delta := range deltas {
		if err := tx.User().AdjustReputation(delta.AccountID, delta.Points); err != nil {
			return err
		}
	}

	return nil
}

func (r *reputationService) AccountPoints(userID uint) (int, error) {
	user, err := r.userRepository.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.Reputation, nil
}

func accountKey(id uint) string {
	return fmt.Sprintf("account:%d", id)
}
