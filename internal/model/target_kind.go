package model

import "fmt"

// TargetKind identifies the kind of entity a vote or bookmark points at.
type TargetKind int

const (
	TargetQuestion TargetKind = 0
	TargetAnswer   TargetKind = 1
	TargetComment  TargetKind = 2
)

func (tk TargetKind) Valid() bool {
	switch tk {
	case TargetQuestion, TargetAnswer, TargetComment:
		return true
	default:
		return false
	}
}

func (tk TargetKind) String() string {
	switch tk {
	case TargetQuestion:
		return "question"
	case TargetAnswer:
		return "answer"
	case TargetComment:
		return "comment"
	default:
		return fmt.Sprintf("unknown(%d)", int(tk))
	}
}

// ActionKey builds the rate limiter key class for an action verb, e.g.
// ActionKey("vote") on TargetQuestion yields "vote-question". Cooldown is
// per action kind, not per specific target.
func (tk TargetKind) ActionKey(verb string) string {
	return verb + "-" + tk.String()
}
