package domain

import "errors"

var (
	ErrLandingNotFound   = errors.New("landing not found")
	ErrInvalidSubmission = errors.New("invalid landing submission")
	ErrInvalidEvent      = errors.New("invalid analytics event")
	// ErrEventsClaimed means every event in a submission for a new landing is
	// already recorded under another landing.
	ErrEventsClaimed = errors.New("landing events already recorded under another landing")
)
