package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
	"github.com/campusclubs/club-blog-service/internal/repository"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

const blogListLimit = 50

// BlogService runs the content-review pipeline:
// DRAFT -> PENDING_REVIEW -> PUBLISHED or REJECTED.
type BlogService struct {
	blogs      repository.BlogRepository
	dispatcher events.Dispatcher
}

// NewBlogService builds the service.
func NewBlogService(blogs repository.BlogRepository, dispatcher events.Dispatcher) *BlogService {
	return &BlogService{blogs: blogs, dispatcher: dispatcher}
}

// Create stores a new draft for the author.
func (s *BlogService) Create(ctx context.Context, authorID, title, content string) (*domain.Blog, error) {
	blog := &domain.Blog{
		AuthorID: authorID,
		Title:    title,
		Content:  content,
		Status:   domain.BlogStatusDraft,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Submit moves the author's own draft into review.
func (s *BlogService) Submit(ctx context.Context, authorID, blogID string) (*domain.Blog, error) {
	blog, err := s.get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != authorID {
		return nil, apperrors.NewForbidden("you can only submit your own blogs")
	}
	if blog.Status != domain.BlogStatusDraft {
		return nil, apperrors.NewInvalidTransition("only draft blogs can be submitted for review")
	}

	blog.Status = domain.BlogStatusPendingReview
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBlogSubmitted, authorID, events.BlogReviewedPayload{
		BlogID:    blog.ID,
		NewStatus: blog.Status,
	})
	return blog, nil
}

// Review applies an admin decision to a blog awaiting review.
func (s *BlogService) Review(ctx context.Context, adminID, blogID string, approve bool, reason string) (*domain.Blog, error) {
	blog, err := s.get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.BlogStatusPendingReview {
		return nil, apperrors.NewInvalidTransition("blog is not pending review")
	}

	if approve {
		now := time.Now()
		blog.Status = domain.BlogStatusPublished
		blog.PublishedAt = &now
		blog.RejectionReason = ""
	} else {
		blog.Status = domain.BlogStatusRejected
		blog.RejectionReason = reason
	}
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBlogReviewed, adminID, events.BlogReviewedPayload{
		BlogID:    blog.ID,
		NewStatus: blog.Status,
		Reason:    reason,
	})
	return blog, nil
}

// ListPublished returns the most recent published posts.
func (s *BlogService) ListPublished(ctx context.Context) ([]*domain.Blog, error) {
	return s.blogs.ListByStatus(ctx, domain.BlogStatusPublished, blogListLimit)
}

// ListPendingReview returns posts awaiting an admin decision.
func (s *BlogService) ListPendingReview(ctx context.Context) ([]*domain.Blog, error) {
	return s.blogs.ListByStatus(ctx, domain.BlogStatusPendingReview, blogListLimit)
}

// ListMine returns the author's own posts in any status.
func (s *BlogService) ListMine(ctx context.Context, authorID string) ([]*domain.Blog, error) {
	return s.blogs.ListByAuthor(ctx, authorID, blogListLimit)
}

// GetPublished returns a single published post.
func (s *BlogService) GetPublished(ctx context.Context, blogID string) (*domain.Blog, error) {
	blog, err := s.get(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Status != domain.BlogStatusPublished {
		return nil, apperrors.NewNotFound("blog", nil)
	}
	return blog, nil
}

func (s *BlogService) get(ctx context.Context, blogID string) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("blog", nil)
		}
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
