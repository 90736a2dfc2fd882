package domain

import "fmt"

// ErrInvalidTransition is returned when a requested status change is not
// allowed by the account lifecycle.
type ErrInvalidTransition struct {
	From UserStatus
	To   UserStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// lifecycleTransitions is the allowed status graph. PENDING is the only
// non-terminal state; VERIFIED and REJECTED are terminal.
var lifecycleTransitions = map[UserStatus]map[UserStatus]struct{}{
	UserStatusPending: {
		UserStatusVerified: {},
		UserStatusRejected: {},
	},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to UserStatus) bool {
	targets, ok := lifecycleTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Transition mutates the user's status after validating the move against the
// lifecycle graph. It does not persist; callers own the write.
func Transition(u *User, to UserStatus) error {
	if u == nil {
		return &ErrInvalidTransition{To: to}
	}
	if !CanTransition(u.Status, to) {
		return &ErrInvalidTransition{From: u.Status, To: to}
	}
	u.Status = to
	return nil
}
