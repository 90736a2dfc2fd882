package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/config"
	"github.com/campusclubs/club-blog-service/internal/domain"
	"github.com/campusclubs/club-blog-service/internal/events"
	"github.com/campusclubs/club-blog-service/internal/mailer"
	"github.com/campusclubs/club-blog-service/internal/repository"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// AuthService coordinates registration, activation, login and reset flows.
type AuthService struct {
	users      repository.UserRepository
	ledger     *auth.Ledger
	tokenMgr   *auth.TokenManager
	mail       mailer.Mailer
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
	refreshTTL time.Duration
	baseURL    string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Ledger     *auth.Ledger
	TokenMgr   *auth.TokenManager
	Mailer     mailer.Mailer
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		ledger:     deps.Ledger,
		tokenMgr:   deps.TokenMgr,
		mail:       deps.Mailer,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.ResetTokenTTLHours) * time.Hour,
		refreshTTL: time.Duration(cfg.Auth.RefreshTokenTTLHours) * time.Hour,
		baseURL:    cfg.App.BaseURL,
	}
}

// Session bundles the credentials issued on login and refresh.
type Session struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Register creates a PENDING member with no credential and sends a
// confirmation. The outcome is uniform whether or not the email is already
// taken, to resist account enumeration; an existing email is a silent no-op.
func (s *AuthService) Register(ctx context.Context, name, email, registrationNo, year, memberDomain string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	user := &domain.User{
		Name:           name,
		Email:          email,
		Status:         domain.UserStatusPending,
		Role:           domain.UserRoleMember,
		Year:           year,
		Domain:         memberDomain,
		RegistrationNo: registrationNo,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserDecisionPayload{
		UserID:    user.ID,
		UserEmail: user.Email,
	})

	subject, html := mailer.RegistrationReceived(user.Name)
	if err := s.mail.Send(ctx, user.Email, subject, html); err != nil {
		// the account already exists; delivery is not rolled back
		return apperrors.NewEmailDeliveryFailed(err)
	}
	return nil
}

// Login authenticates a member and mints a session. Unknown email and wrong
// password collapse into InvalidCredentials; an unverified account with a
// correct password surfaces NotVerified distinctly.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, err
	}
	if user.PasswordHash == "" || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.NewInvalidCredentials()
	}
	if !user.CanLogin() {
		return nil, nil, apperrors.NewNotVerified()
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Refresh verifies a refresh credential against both its signature and the
// ledger row it references, then mints a fresh access credential.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.VerifyRefresh(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewInvalidOrExpiredToken()
	}

	record, err := s.ledger.Validate(ctx, claims.TokenID, domain.TokenKindRefresh)
	if err != nil {
		return "", time.Time{}, err
	}
	if record == nil || record.UserID != claims.UserID {
		return "", time.Time{}, apperrors.NewInvalidOrExpiredToken()
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewInvalidOrExpiredToken()
		}
		return "", time.Time{}, err
	}
	if !user.CanLogin() {
		return "", time.Time{}, apperrors.NewInvalidOrExpiredToken()
	}

	return s.tokenMgr.IssueAccess(user)
}

// Logout revokes the one refresh session referenced by the presented
// credential. Best-effort: an unparseable credential is ignored so the
// caller can still clear cookies and report success.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokenMgr.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}
	return s.ledger.Revoke(ctx, claims.TokenID, domain.TokenKindRefresh)
}

// Activate consumes an ACTIVATION token, sets the first credential and flips
// the account PENDING -> VERIFIED.
func (s *AuthService) Activate(ctx context.Context, token, password string) (*domain.User, error) {
	record, err := s.ledger.Validate(ctx, token, domain.TokenKindActivation)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperrors.NewInvalidOrExpiredToken()
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if err := domain.Transition(user, domain.UserStatusVerified); err != nil {
		return nil, apperrors.NewInvalidTransition(err.Error())
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserActivated, user.ID, events.UserActivatedPayload{UserID: user.ID})
	return user, nil
}

// RequestReset issues a RESET token only for a VERIFIED account with that
// email. The caller's response must be identical regardless of existence.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	if user.Status != domain.UserStatusVerified {
		return nil
	}

	token, err := s.ledger.Issue(ctx, user.ID, domain.TokenKindReset, s.resetTTL)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	subject, html := mailer.PasswordReset(user.Name, resetURL)
	if err := s.mail.Send(ctx, user.Email, subject, html); err != nil {
		// the token stays issued; delivery is not rolled back
		return apperrors.NewEmailDeliveryFailed(err)
	}
	return nil
}

// CompleteReset consumes a RESET token, replaces the credential and revokes
// every refresh session for the user, forcing re-login everywhere.
func (s *AuthService) CompleteReset(ctx context.Context, token, password string) error {
	record, err := s.ledger.Validate(ctx, token, domain.TokenKindReset)
	if err != nil {
		return err
	}
	if record == nil {
		return apperrors.NewInvalidOrExpiredToken()
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	revoked, err := s.ledger.RevokeAll(ctx, user.ID, domain.TokenKindRefresh)
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventPasswordReset, user.ID, events.PasswordResetPayload{
		UserID:          user.ID,
		RevokedSessions: revoked,
	})
	return nil
}

// EnsureAdmin seeds the bootstrap administrator when configured and absent.
func (s *AuthService) EnsureAdmin(ctx context.Context, seed config.AdminSeedConfig) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, seed.Email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(seed.Password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: hash,
		Status:       domain.UserStatusVerified,
		Role:         domain.UserRoleAdmin,
	}
	return s.users.Create(ctx, admin)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*Session, error) {
	refreshOpaque, err := s.ledger.Issue(ctx, user.ID, domain.TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	accessToken, accessExp, err := s.tokenMgr.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokenMgr.IssueRefresh(user.ID, refreshOpaque)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
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
