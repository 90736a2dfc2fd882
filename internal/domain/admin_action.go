package domain

import "time"

// AdminAction is an append-only audit record of an administrative decision.
// Business logic never reads or mutates these rows.
type AdminAction struct {
	ID          string
	AdminID     string
	Action      string
	TargetType  string
	TargetID    string
	Description string
	CreatedAt   time.Time
}
