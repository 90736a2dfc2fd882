package domain

import "time"

// BlogStatus tracks a post through the review pipeline.
type BlogStatus string

const (
	BlogStatusDraft         BlogStatus = "DRAFT"
	BlogStatusPendingReview BlogStatus = "PENDING_REVIEW"
	BlogStatusPublished     BlogStatus = "PUBLISHED"
	BlogStatusRejected      BlogStatus = "REJECTED"
)

// Blog is a member-authored post.
type Blog struct {
	ID              string
	AuthorID        string
	AuthorName      string
	Title           string
	Content         string
	Status          BlogStatus
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PublishedAt     *time.Time
}
