package dto

import "time"

// ApproveUserRequest payload for an approval decision.
type ApproveUserRequest struct {
	UserID string `json:"userId"`
}

// RejectUserRequest payload for a rejection decision.
type RejectUserRequest struct {
	UserID string `json:"userId"`
	Reason string `json:"reason,omitempty"`
}

// PendingUserResponse is the admin view of a pending registration.
type PendingUserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	RegistrationNo string    `json:"registrationNo"`
	Year           string    `json:"year"`
	Domain         string    `json:"domain"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
