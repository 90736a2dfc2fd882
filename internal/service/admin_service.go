package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/config"
	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
	"github.com/campusclubs/club-blog-service/internal/mailer"
	"github.com/campusclubs/club-blog-service/internal/repository"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// AdminService handles membership decisions. Rejection keeps the row and
// marks it REJECTED; a rejected account never authenticates because login
// gates on VERIFIED.
type AdminService struct {
	users         repository.UserRepository
	ledger        *auth.Ledger
	mail          mailer.Mailer
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	activationTTL time.Duration
	baseURL       string
}

// AdminDependencies encapsulates requirements for the admin service.
type AdminDependencies struct {
	UserRepo   repository.UserRepository
	Ledger     *auth.Ledger
	Mailer     mailer.Mailer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		users:         deps.UserRepo,
		ledger:        deps.Ledger,
		mail:          deps.Mailer,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		activationTTL: time.Duration(cfg.Auth.ActivationTokenTTLHours) * time.Hour,
		baseURL:       cfg.App.BaseURL,
	}
}

// PendingUsers lists registrations awaiting a decision.
func (s *AdminService) PendingUsers(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.users.ListByStatus(ctx, domain.UserStatusPending, limit)
}

// ApproveUser issues a 24h ACTIVATION token for a PENDING registration and
// mails the activation link. The account stays PENDING until the owner
// completes activation. A mail failure surfaces EmailDeliveryFailed but the
// token is not rolled back.
func (s *AdminService) ApproveUser(ctx context.Context, adminID, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if user.Status != domain.UserStatusPending {
		return nil, apperrors.NewInvalidTransition("user is not pending approval")
	}

	token, err := s.ledger.Issue(ctx, user.ID, domain.TokenKindActivation, s.activationTTL)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserApproved, adminID, events.UserDecisionPayload{
		UserID:    user.ID,
		UserEmail: user.Email,
	})

	activationURL := fmt.Sprintf("%s/activate?token=%s", s.baseURL, token)
	subject, html := mailer.Activation(user.Name, activationURL)
	if err := s.mail.Send(ctx, user.Email, subject, html); err != nil {
		return nil, apperrors.NewEmailDeliveryFailed(err)
	}
	return user, nil
}

// RejectUser flips a PENDING registration to REJECTED. The rejection mail is
// best-effort and never fails the decision.
func (s *AdminService) RejectUser(ctx context.Context, adminID, userID, reason string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if err := domain.Transition(user, domain.UserStatusRejected); err != nil {
		return nil, apperrors.NewInvalidTransition("user is not pending approval")
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRejected, adminID, events.UserDecisionPayload{
		UserID:    user.ID,
		UserEmail: user.Email,
		Reason:    reason,
	})

	subject, html := mailer.Rejection(user.Name)
	if err := s.mail.Send(ctx, user.Email, subject, html); err != nil {
		s.logger.Warn("rejection mail failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
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
