package service

import (
	"context"
	"fmt"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// BestAnswerOutcome describes one accepted-answer transition. Changed is
// false when the answer was already marked, which is a successful no-op.
type BestAnswerOutcome struct {
	QuestionID  uint
	AnswerID    uint
	AuthorID    uint
	RequestedBy uint
	Changed     bool
	Deltas      []model.ReputationDelta
}

type BestAnswerService interface {
	// Mark sets the question's accepted answer. Replacing a prior mark
	// reverses the old author's award and grants the new one in the same
	// transaction; there is never a window with both or neither marked.
	Mark(ctx context.Context, questionID, answerID, requestedBy uint) (BestAnswerOutcome, error)
	// Unmark clears the mark and reverses the award; called by the
	// collaborator that handles answer deletion.
	Unmark(ctx context.Context, questionID uint) (BestAnswerOutcome, error)
}

type bestAnswerService struct {
	repositories        repository.Repositories
	reputationService   ReputationService
	notificationService NotificationService
	questionLocks       *keyMutex
}

func newBestAnswerService(repositories repository.Repositories, reputationService ReputationService, notificationService NotificationService) BestAnswerService {
	return &bestAnswerService{
		repositories:        repositories,
		reputationService:   reputationService,
		notificationService: notificationService,
		questionLocks:       newKeyMutex(),
	}
}

func (s *bestAnswerService) Mark(ctx context.Context, questionID, answerID, requestedBy uint) (BestAnswerOutcome, error) {
	answer, err := s.repositories.Question().GetAnswer(answerID)
	if err != nil {
		return BestAnswerOutcome{}, err
	}
	if answer.QuestionID != questionID {
		return BestAnswerOutcome{}, fmt.Errorf("%w: answer %d does not belong to question %d", dto.ErrNotFound, answerID, questionID)
	}

	key := questionKey(questionID)
	s.questionLocks.Lock(key)
	defer s.questionLocks.Unlock(key)

	outcome := BestAnswerOutcome{
		QuestionID:  questionID,
		AnswerID:    answerID,
		AuthorID:    answer.AuthorID,
		RequestedBy: requestedBy,
	}

	err = s.repositories.Transaction(ctx, func(tx repository.Repositories) error {
		question, err := tx.Question().GetByID(questionID)
		if err != nil {
			return err
		}

		if question.BestAnswerID != nil && *question.BestAnswerID == answerID {
			// already the best answer, nothing to do
			return nil
		}

		var deltas []model.ReputationDelta
		if question.BestAnswerID != nil {
			previous, err := tx.Question().GetAnswer(*question.BestAnswerID)
			if err != nil {
				return err
			}
			deltas = append(deltas, model.ReputationDelta{
				AccountID: previous.AuthorID,
				Points:    -model.PointsBestAnswer,
				Reason:    model.ReasonBestAnswer,
			})
		}
		deltas = append(deltas, model.ReputationDelta{
			AccountID: answer.AuthorID,
			Points:    model.PointsBestAnswer,
			Reason:    model.ReasonBestAnswer,
		})

		if err := tx.Question().SetBestAnswer(questionID, &answerID); err != nil {
			return err
		}

		outcome.Changed = true
		outcome.Deltas = deltas
		return s.reputationService.ApplyDeltas(tx, deltas)
	})
	if err != nil {
		return BestAnswerOutcome{}, err
	}

	if outcome.Changed {
		logrus.Infof("User %d marked answer %d as best for question %d", requestedBy, answerID, questionID)
		s.notificationService.Publish(s.notificationService.DeriveBestAnswer(outcome))
	}

	return outcome, nil
}

func (s *bestAnswerService) Unmark(ctx context.Context, questionID uint) (BestAnswerOutcome, error) {
	key := questionKey(questionID)
	s.questionLocks.Lock(key)
	defer s.questionLocks.Unlock(key)

	outcome := BestAnswerOutcome{
		QuestionID: questionID,
	}

	err := s.repositories.Transaction(ctx, func(tx repository.Repositories) error {
		question, err := tx.Question().GetByID(questionID)
		if err != nil {
			return err
		}

		if question.BestAnswerID == nil {
			return nil
		}

		previous, err := tx.Question().GetAnswer(*question.BestAnswerID)
		if err != nil {
			return err
		}

		deltas := []model.ReputationDelta{{
			AccountID: previous.AuthorID,
			Points:    -model.PointsBestAnswer,
			Reason:    model.ReasonBestAnswer,
		}}

		if err := tx.Question().SetBestAnswer(questionID, nil); err != nil {
			return err
		}

		outcome.AnswerID = previous.ID
		outcome.AuthorID = previous.AuthorID
		outcome.Changed = true
		outcome.Deltas = deltas
		return s.reputationService.ApplyDeltas(tx, deltas)
	})
	if err != nil {
		return BestAnswerOutcome{}, err
	}

	if outcome.Changed {
		logrus.Infof("Best answer %d unmarked for question %d", outcome.AnswerID, questionID)
	}

	return outcome, nil
}

func questionKey(questionID uint) string {
	return fmt.Sprintf("question:%d", questionID)
}
