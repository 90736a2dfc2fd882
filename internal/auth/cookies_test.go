package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookies(t *testing.T, handler fiber.Handler) map[string]*http.Cookie {
	t.Helper()
	app := fiber.New()
	app.Post("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	require.NoError(t, err)

	cookies := make(map[string]*http.Cookie)
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestSetSessionCookieContract(t *testing.T) {
	writer := NewCookieWriter(true)
	cookies := sessionCookies(t, func(c *fiber.Ctx) error {
		writer.SetSession(c, "access-jwt", "refresh-jwt")
		return c.SendStatus(http.StatusOK)
	})

	access := cookies[AccessCookieName]
	require.NotNil(t, access)
	assert.Equal(t, "access-jwt", access.Value)
	assert.Equal(t, 900, access.MaxAge)

	refresh := cookies[RefreshCookieName]
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.Equal(t, 604800, refresh.MaxAge)

	for _, c := range []*http.Cookie{access, refresh} {
		assert.True(t, c.HttpOnly, "%s must be HttpOnly", c.Name)
		assert.True(t, c.Secure, "%s must be Secure in production", c.Name)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	}
}

func TestSetAccessCarriesFullContract(t *testing.T) {
	writer := NewCookieWriter(true)
	cookies := sessionCookies(t, func(c *fiber.Ctx) error {
		writer.SetAccess(c, "rotated-access-jwt")
		return c.SendStatus(http.StatusOK)
	})

	access := cookies[AccessCookieName]
	require.NotNil(t, access)
	assert.Equal(t, "rotated-access-jwt", access.Value)
	assert.Equal(t, 900, access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure, "rotation must keep the Secure attribute")
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteStrictMode, access.SameSite)

	_, ok := cookies[RefreshCookieName]
	assert.False(t, ok, "refresh cookie is left alone")
}

func TestSetAccessInsecureOutsideProduction(t *testing.T) {
	writer := NewCookieWriter(false)
	cookies := sessionCookies(t, func(c *fiber.Ctx) error {
		writer.SetAccess(c, "access-jwt")
		return c.SendStatus(http.StatusOK)
	})

	access := cookies[AccessCookieName]
	require.NotNil(t, access)
	assert.False(t, access.Secure)
	assert.True(t, access.HttpOnly)
}

func TestClearSessionExpiresBothCookies(t *testing.T) {
	writer := NewCookieWriter(true)
	cookies := sessionCookies(t, func(c *fiber.Ctx) error {
		writer.ClearSession(c)
		return c.SendStatus(http.StatusOK)
	})

	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		cleared := cookies[name]
		require.NotNil(t, cleared, name)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge, "%s must be dropped immediately", name)
	}
}
