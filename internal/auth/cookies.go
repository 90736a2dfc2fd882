package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	// AccessCookieName carries the access credential.
	AccessCookieName = "accessToken"
	// RefreshCookieName carries the refresh credential.
	RefreshCookieName = "refreshToken"

	accessCookieMaxAge  = 15 * 60
	refreshCookieMaxAge = 7 * 24 * 60 * 60
)

// CookieWriter stamps session cookies onto responses with the transport
// contract fixed: HttpOnly, SameSite=Strict, Path=/, Secure in production.
type CookieWriter struct {
	secure bool
}

// NewCookieWriter builds a writer; secure should be true outside development.
func NewCookieWriter(secure bool) *CookieWriter {
	return &CookieWriter{secure: secure}
}

// SetSession writes both credentials with their fixed max-ages.
func (w *CookieWriter) SetSession(c *fiber.Ctx, accessToken, refreshToken string) {
	w.SetAccess(c, accessToken)
	c.Cookie(w.cookie(RefreshCookieName, refreshToken, refreshCookieMaxAge))
}

// SetAccess rewrites only the access credential, leaving the refresh cookie
// untouched. Used on refresh so the new cookie carries the same attributes
// as the one issued at login.
func (w *CookieWriter) SetAccess(c *fiber.Ctx, accessToken string) {
	c.Cookie(w.cookie(AccessCookieName, accessToken, accessCookieMaxAge))
}

// ClearSession overwrites both credentials with empty values and immediate
// expiry, used on logout and forced invalidation.
func (w *CookieWriter) ClearSession(c *fiber.Ctx) {
	c.Cookie(w.expired(AccessCookieName))
	c.Cookie(w.expired(RefreshCookieName))
}

func (w *CookieWriter) cookie(name, value string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (w *CookieWriter) expired(name string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
