package dto

import "time"

type NotificationKind string

const (
	NotificationUpvoteReceived   NotificationKind = "upvote-received"
	NotificationDownvoteReceived NotificationKind = "downvote-received"
	NotificationBestAnswer       NotificationKind = "best-answer"
)

// NotificationEvent is handed to the external delivery collaborator over
// the message bus; this service never delivers it itself.
type NotificationEvent struct {
	RecipientID uint             `json:"recipientId"`
	ActorID     uint             `json:"actorId"`
	Kind        NotificationKind `json:"kind"`
	PointsDelta int              `json:"pointsDelta"`
	Message     string           `json:"message"`
	CreatedAt   time.Time        `json:"createdAt"`
}
