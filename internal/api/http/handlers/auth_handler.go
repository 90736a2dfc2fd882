package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/campusclubs/club-blog-service/internal/api/dto"
	"github.com/campusclubs/club-blog-service/internal/auth"
	"github.com/campusclubs/club-blog-service/internal/service"
)

// Responses to register and reset-request are identical whether or not the
// email exists, to resist account enumeration.
const (
	registerMessage     = "Registration received. An administrator will review your request."
	resetRequestMessage = "If an account with that email exists, a password reset link has been sent."
)

// AuthHandler exposes the membership auth endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	limiter *service.LoginLimiter
	cookies *auth.CookieWriter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, limiter *service.LoginLimiter, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{auth: authService, limiter: limiter, cookies: cookies}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		return fiber.NewError(http.StatusBadRequest, "name and email required")
	}

	if err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.RegistrationNo, req.Year, req.Domain); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"message": registerMessage})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	if err := h.limiter.Allow(c.UserContext(), req.Email, c.IP()); err != nil {
		return err
	}

	user, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.limiter.Reset(c.UserContext(), req.Email, c.IP())

	h.cookies.SetSession(c, session.AccessToken, session.RefreshToken)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user": dto.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   string(user.Role),
			Status: string(user.Status),
		},
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := auth.ExtractRefreshToken(c)
	accessToken, _, err := h.auth.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		return err
	}

	h.cookies.SetAccess(c, accessToken)
	return c.JSON(fiber.Map{"message": "Token refreshed"})
}

// Logout handles POST /auth/logout. Always clears cookies and reports
// success, even when the refresh credential no longer parses.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.auth.Logout(c.UserContext(), auth.ExtractRefreshToken(c))
	h.cookies.ClearSession(c)
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Activate handles POST /auth/activate.
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || len(req.Password) < 8 {
		return fiber.NewError(http.StatusBadRequest, "token and password of at least 8 characters required")
	}

	user, err := h.auth.Activate(c.UserContext(), req.Token, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Account activated successfully. You can now log in.",
		"user": dto.UserResponse{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Status: string(user.Status),
		},
	})
}

// RequestReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestReset(c *fiber.Ctx) error {
	var req dto.RequestResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	if err := h.auth.RequestReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": resetRequestMessage})
}

// CompleteReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) CompleteReset(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || len(req.Password) < 8 {
		return fiber.NewError(http.StatusBadRequest, "token and password of at least 8 characters required")
	}

	if err := h.auth.CompleteReset(c.UserContext(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successful. Please log in with your new password."})
}
