package model

// Point values for named reputation events.
const (
	PointsUpvoteGiven      = 1
	PointsUpvoteReceived   = 2
	PointsDownvoteGiven    = -1
	PointsDownvoteReceived = -2
	PointsBestAnswer       = 10
)

type ReputationReason string

const (
	ReasonUpvoteGiven      ReputationReason = "upvote-given"
	ReasonUpvoteReceived   ReputationReason = "upvote-received"
	ReasonDownvoteGiven    ReputationReason = "downvote-given"
	ReasonDownvoteReceived ReputationReason = "downvote-received"
	ReasonBestAnswer       ReputationReason = "best-answer"
)

// ReputationDelta is a single named point adjustment for one account.
// A retraction carries the same reason with the sign flipped.
type ReputationDelta struct {
	AccountID uint
	Points    int
	Reason    ReputationReason
}
