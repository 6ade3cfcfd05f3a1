package dto

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrSelfVote          = errors.New("voting on own content is not allowed")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrInvalidTargetKind = errors.New("invalid target kind")
	ErrConflict          = errors.New("concurrent modification conflict")
	ErrInternalFailure   = errors.New("internal failure")
)
