package model

import "time"

// Direction is the polarity of a vote.
type Direction int

const (
	DirectionUp   Direction = 1
	DirectionDown Direction = -1
)

func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// Unit is the vote counter delta contributed by one vote of this direction.
func (d Direction) Unit() int {
	return int(d)
}

func (d Direction) Opposite() Direction {
	return -d
}

func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// Vote holds at most one row per (voter, target kind, target id); the
// unique index is what turns a concurrent double-click into a storage
// conflict instead of a duplicate record.
type Vote struct {
	ID         uint       `gorm:"primarykey"`
	VoterID    uint       `gorm:"not null;uniqueIndex:idx_votes_voter_target"`
	TargetKind TargetKind `gorm:"not null;uniqueIndex:idx_votes_voter_target"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_votes_voter_target"`
	Direction  Direction  `gorm:"not null"`
	CreatedAt  time.Time
}
