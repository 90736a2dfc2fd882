package events

import (
	"time"

	"github.com/campusclubs/club-blog-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserApproved   EventType = "user_approved"
	EventUserRejected   EventType = "user_rejected"
	EventUserActivated  EventType = "user_activated"
	EventPasswordReset  EventType = "password_reset"
	EventBlogSubmitted  EventType = "blog_submitted"
	EventBlogReviewed   EventType = "blog_reviewed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserDecisionPayload accompanies approve/reject decisions.
type UserDecisionPayload struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	Reason    string `json:"reason,omitempty"`
}

// UserActivatedPayload accompanies successful activations.
type UserActivatedPayload struct {
	UserID string `json:"user_id"`
}

// PasswordResetPayload accompanies completed resets.
type PasswordResetPayload struct {
	UserID          string `json:"user_id"`
	RevokedSessions int64  `json:"revoked_sessions"`
}

// BlogReviewedPayload accompanies review decisions.
type BlogReviewedPayload struct {
	BlogID    string            `json:"blog_id"`
	NewStatus domain.BlogStatus `json:"new_status"`
	Reason    string            `json:"reason,omitempty"`
}
