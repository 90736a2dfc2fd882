package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
	"github.com/campusclubs/club-blog-service/internal/repository"
)

// AuditService appends an admin_actions row for every administrative
// decision. It runs as an event subscriber so a sink failure is logged and
// never blocks the primary operation.
type AuditService struct {
	actions    repository.AdminActionRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(actions repository.AdminActionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{actions: actions, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to admin decision events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserApproved, a.handleUserDecision("approve_user"))
	a.dispatcher.Subscribe(events.EventUserRejected, a.handleUserDecision("reject_user"))
	a.dispatcher.Subscribe(events.EventBlogReviewed, a.handleBlogReviewed)
}

func (a *AuditService) handleUserDecision(action string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.UserDecisionPayload)
		if !ok {
			return nil
		}
		description := fmt.Sprintf("%s for %s", action, payload.UserEmail)
		if payload.Reason != "" {
			description += ". Reason: " + payload.Reason
		}
		return a.record(ctx, &domain.AdminAction{
			AdminID:     event.ActorID,
			Action:      action,
			TargetType:  "user",
			TargetID:    payload.UserID,
			Description: description,
		})
	}
}

func (a *AuditService) handleBlogReviewed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.BlogReviewedPayload)
	if !ok {
		return nil
	}
	description := fmt.Sprintf("review_blog -> %s", payload.NewStatus)
	if payload.Reason != "" {
		description += ". Reason: " + payload.Reason
	}
	return a.record(ctx, &domain.AdminAction{
		AdminID:     event.ActorID,
		Action:      "review_blog",
		TargetType:  "blog",
		TargetID:    payload.BlogID,
		Description: description,
	})
}

func (a *AuditService) record(ctx context.Context, action *domain.AdminAction) error {
	if err := a.actions.Append(ctx, action); err != nil {
		a.logger.Warn("audit append failed",
			zap.String("action", action.Action),
			zap.String("target_id", action.TargetID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
