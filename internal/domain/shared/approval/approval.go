// Package approval models the reviewable-submission workflow shared by
// listing moderation and host applications: a record enters pending and an
// admin reviewer moves it to approved or rejected. Reviewed records may be
// reversed (approved to rejected and back) on later review.
package approval

import "errors"

var (
	ErrInvalidStatus     = errors.New("approval: unknown status")
	ErrInvalidTransition = errors.New("approval: transition not allowed")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Parse validates a wire-level status value.
func Parse(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Reviewed reports whether the status is a reviewer decision.
func (s Status) Reviewed() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transition applies a reviewer decision. Submissions never re-enter pending,
// a repeated identical decision is a no-op, and a reviewer may reverse an
// earlier decision in either direction.
func Transition(current, next Status) (Status, error) {
	if !next.Reviewed() {
		return current, ErrInvalidTransition
	}
	if current == next {
		return current, nil
	}
	switch current {
	case StatusPending, StatusApproved, StatusRejected:
		return next, nil
	default:
		return current, ErrInvalidStatus
	}
}
