package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/answerhub/backend/internal/client"
	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/sirupsen/logrus"
)

// NotificationService derives notification events from committed vote and
// best-answer outcomes and hands them to the message bus. Derivation is a
// pure function of the outcome; publishing never fails the request that
// produced it.
type NotificationService interface {
	Derive(outcome VoteOutcome) []dto.NotificationEvent
	DeriveBestAnswer(outcome BestAnswerOutcome) []dto.NotificationEvent
	Publish(events []dto.NotificationEvent)
}

type notificationService struct {
	rabbitClient client.RabbitClient
}

func newNotificationService(rabbitClient client.RabbitClient) NotificationService {
	return &notificationService{
		rabbitClient: rabbitClient,
	}
}

func (n *notificationService) Derive(outcome VoteOutcome) []dto.NotificationEvent {
	if outcome.Transition == VoteRemoved {
		// a user removing their own vote notifies nobody
		return nil
	}
	if outcome.OwnerID == outcome.VoterID {
		return nil
	}

	points := 0
	for _, delta := range outcome.Deltas {
		if delta.AccountID == outcome.OwnerID {
			points += delta.Points
		}
	}

	kind := dto.NotificationUpvoteReceived
	message := fmt.Sprintf("Your %s received an upvote", outcome.TargetKind)
	if outcome.Direction == model.DirectionDown {
		kind = dto.NotificationDownvoteReceived
		message = fmt.Sprintf("Your %s received a downvote", outcome.TargetKind)
	}

	return []dto.NotificationEvent{{
		RecipientID: outcome.OwnerID,
		ActorID:     outcome.VoterID,
		Kind:        kind,
		PointsDelta: points,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}}
}

func (n *notificationService) DeriveBestAnswer(outcome BestAnswerOutcome) []dto.NotificationEvent {
	if !outcome.Changed {
		return nil
	}
	if outcome.AuthorID == outcome.RequestedBy {
		return nil
	}

	return []dto.NotificationEvent{{
		RecipientID: outcome.AuthorID,
		ActorID:     outcome.RequestedBy,
		Kind:        dto.NotificationBestAnswer,
		PointsDelta: model.PointsBestAnswer,
		Message:     "Your answer was marked as the best answer",
		CreatedAt:   time.Now().UTC(),
	}}
}

func (n *notificationService) Publish(events []dto.NotificationEvent) {
	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			logrus.Errorf("Error marshaling notification: %v", err)
			continue
		}

		if err := n.rabbitClient.PublishMessage(body); err != nil {
			logrus.Errorf("Error publishing notification for user %d: %v", event.RecipientID, err)
		}
	}
}
