package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware extracts and verifies the access credential, attaching the
// resolved claims to the request context.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate enforces a valid access credential. The cookie is preferred;
// a bearer header is accepted as fallback for the access credential only.
// Missing, invalid and expired all surface as the same UNAUTHENTICATED.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	tokenStr := extractAccessToken(c)
	if tokenStr == "" {
		return apperrors.NewUnauthenticated("access token required")
	}

	claims, err := m.tokens.VerifyAccess(tokenStr)
	if err != nil {
		return apperrors.NewUnauthenticated("invalid or expired token")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated claims.
func ClaimsFromContext(c *fiber.Ctx) (*AccessClaims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*AccessClaims)
	return claims, ok
}

// ExtractRefreshToken reads the refresh credential. Cookie only; bearer
// headers are never accepted for refresh.
func ExtractRefreshToken(c *fiber.Ctx) string {
	return c.Cookies(RefreshCookieName)
}

func extractAccessToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(AccessCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
