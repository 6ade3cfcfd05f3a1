package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

type VoteTransition int

const (
	VoteCreated VoteTransition = iota
	VoteRemoved
	VoteSwitched
)

func (t VoteTransition) String() string {
	switch t {
	case VoteCreated:
		return "created"
	case VoteRemoved:
		return "removed"
	case VoteSwitched:
		return "switched"
	default:
		return "unknown"
	}
}

// VoteOutcome describes one committed ledger transition.
type VoteOutcome struct {
	VoterID      uint
	TargetKind   model.TargetKind
	TargetID     uint
	OwnerID      uint
	Direction    model.Direction
	Transition   VoteTransition
	NewVoteCount int
	Deltas       []model.ReputationDelta
}

type VoteService interface {
	// ApplyVote toggles, switches, or creates the caller's vote on a target.
	// Repeating the same direction retracts the vote; the opposite direction
	// flips it. The vote record, the target counter, and every reputation
	// delta commit together or not at all.
	ApplyVote(ctx context.Context, voterID uint, kind model.TargetKind, targetID uint, direction model.Direction) (VoteOutcome, error)
	// LiveVoteCount recomputes the counter from the vote records themselves.
	LiveVoteCount(kind model.TargetKind, targetID uint) (int, error)
}

type voteService struct {
	repositories        repository.Repositories
	reputationService   ReputationService
	notificationService NotificationService
	targetLocks         *keyMutex
}

func newVoteService(repositories repository.Repositories, reputationService ReputationService, notificationService NotificationService) VoteService {
	return &voteService{
		repositories:        repositories,
		reputationService:   reputationService,
		notificationService: notificationService,
		targetLocks:         newKeyMutex(),
	}
}

func (v *voteService) ApplyVote(ctx context.Context, voterID uint, kind model.TargetKind, targetID uint, direction model.Direction) (VoteOutcome, error) {
	if !kind.Valid() {
		return VoteOutcome{}, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}

	outcome, err := v.applyVoteOnce(ctx, voterID, kind, targetID, direction)
	if errors.Is(err, dto.ErrConflict) {
		// A concurrent request from the same voter raced us on the unique
		// vote index; the re-read sees its result, so one retry settles it.
		outcome, err = v.applyVoteOnce(ctx, voterID, kind, targetID, direction)
	}
	if err != nil {
		return VoteOutcome{}, err
	}

	logrus.Infof("User %d %s %s vote on %s %d, count now %d",
		voterID, outcome.Transition, direction, kind, targetID, outcome.NewVoteCount)
	v.notificationService.Publish(v.notificationService.Derive(outcome))

	return outcome, nil
}

func (v *voteService) applyVoteOnce(ctx context.Context, voterID uint, kind model.TargetKind, targetID uint, direction model.Direction) (VoteOutcome, error) {
	target, err := v.repositories.Target().Get(kind, targetID)
	if err != nil {
		return VoteOutcome{}, err
	}
	if target.OwnerID == voterID {
		// rejected before any state mutation
		return VoteOutcome{}, fmt.Errorf("%w: user %d owns %s %d", dto.ErrSelfVote, voterID, kind, targetID)
	}

	key := targetKey(kind, targetID)
	v.targetLocks.Lock(key)
	defer v.targetLocks.Unlock(key)

	outcome := VoteOutcome{
		VoterID:    voterID,
		TargetKind: kind,
		TargetID:   targetID,
		OwnerID:    target.OwnerID,
		Direction:  direction,
	}

	err = v.repositories.Transaction(ctx, func(tx repository.Repositories) error {
		existing, err := tx.Vote().FindByVoterAndTarget(voterID, kind, targetID)

		var counterDelta int
		switch {
		case errors.Is(err, dto.ErrNotFound):
			_, err := tx.Vote().Create(model.Vote{
				VoterID:    voterID,
				TargetKind: kind,
				TargetID:   targetID,
				Direction:  direction,
				CreatedAt:  time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			outcome.Transition = VoteCreated
			outcome.Deltas = voteDeltas(voterID, target.OwnerID, direction, 1)
			counterDelta = direction.Unit()

		case err != nil:
			return err

		case existing.Direction == direction:
			// same action twice retracts the vote
			if err := tx.Vote().Delete(existing.ID); err != nil {
				return err
			}
			outcome.Transition = VoteRemoved
			outcome.Deltas = voteDeltas(voterID, target.OwnerID, direction, -1)
			counterDelta = -direction.Unit()

		default:
			existing.Direction = direction
			if _, err := tx.Vote().Save(existing); err != nil {
				return err
			}
			outcome.Transition = VoteSwitched
			outcome.Deltas = append(
				voteDeltas(voterID, target.OwnerID, direction.Opposite(), -1),
				voteDeltas(voterID, target.OwnerID, direction, 1)...,
			)
			counterDelta = 2 * direction.Unit()
		}

		count, err := tx.Target().AdjustVoteCount(kind, targetID, counterDelta)
		if err != nil {
			return err
		}
		outcome.NewVoteCount = count

		return v.reputationService.ApplyDeltas(tx, outcome.Deltas)
	})
	if err != nil {
		return VoteOutcome{}, err
	}

	return outcome, nil
}

func (v *voteService) LiveVoteCount(kind model.TargetKind, targetID uint) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}
	return v.repositories.Vote().SumDirections(kind, targetID)
}

func voteDeltas(voterID, ownerID uint, direction model.Direction, sign int) []model.ReputationDelta {
	if direction == model.DirectionUp {
		return []model.ReputationDelta{
			{AccountID: voterID, Points: sign * model.PointsUpvoteGiven, Reason: model.ReasonUpvoteGiven},
			{AccountID: ownerID, Points: sign * model.PointsUpvoteReceived, Reason: model.ReasonUpvoteReceived},
		}
	}
	return []model.ReputationDelta{
		{AccountID: voterID, Points: sign * model.PointsDownvoteGiven, Reason: model.ReasonDownvoteGiven},
		{AccountID: ownerID, Points: sign * model.PointsDownvoteReceived, Reason: model.ReasonDownvoteReceived},
	}
}

func targetKey(kind model.TargetKind, targetID uint) string {
	return fmt.Sprintf("%s:%d", kind, targetID)
}
