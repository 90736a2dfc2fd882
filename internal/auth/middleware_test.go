package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusclubs/club-blog-service/internal/domain"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

func protectedApp(tm *TokenManager, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	mw := NewMiddleware(tm)

	chain := append([]fiber.Handler{mw.Authenticate}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		claims, _ := ClaimsFromContext(c)
		return c.JSON(fiber.Map{"userId": claims.UserID})
	})
	app.Get("/protected", chain...)
	return app
}

func issueAccessFor(t *testing.T, tm *TokenManager, role domain.UserRole, status domain.UserStatus) string {
	t.Helper()
	token, _, err := tm.IssueAccess(&domain.User{
		ID:     "user-1",
		Email:  "a@x.com",
		Role:   role,
		Status: status,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateMissingToken(t *testing.T) {
	app := protectedApp(testTokenManager())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	app := protectedApp(testTokenManager())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	tm := testTokenManager()
	tm.accessTTL = -time.Minute
	app := protectedApp(tm)

	token := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusVerified)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticateCookie(t *testing.T) {
	tm := testTokenManager()
	app := protectedApp(tm)

	token := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusVerified)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticateBearerFallback(t *testing.T) {
	tm := testTokenManager()
	app := protectedApp(tm)

	token := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusVerified)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireVerified(t *testing.T) {
	tm := testTokenManager()
	app := protectedApp(tm, RequireVerified())

	pending := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusPending)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: pending})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	verified := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusVerified)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: verified})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	tm := testTokenManager()
	app := protectedApp(tm, RequireVerified(), RequireAdmin())

	member := issueAccessFor(t, tm, domain.UserRoleMember, domain.UserStatusVerified)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: member})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := issueAccessFor(t, tm, domain.UserRoleAdmin, domain.UserStatusVerified)
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: admin})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshTokenNeverReadFromHeader(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/refresh", func(c *fiber.Ctx) error {
		got = ExtractRefreshToken(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer some-refresh-jwt")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, got)

	req = httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "cookie-refresh"})
	_, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "cookie-refresh", got)
}
