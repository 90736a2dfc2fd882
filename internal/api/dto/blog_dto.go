package dto

import "time"

// CreateBlogRequest payload for a new draft.
type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReviewBlogRequest payload for a review decision.
type ReviewBlogRequest struct {
	BlogID string `json:"blogId"`
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// BlogResponse is the public view of a post.
type BlogResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Content         string     `json:"content"`
	AuthorID        string     `json:"authorId"`
	AuthorName      string     `json:"authorName"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}
