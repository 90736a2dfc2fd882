package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusclubs/club-blog-service/internal/domain"
	apperrors "github.com/campusclubs/club-blog-service/pkg/util"
)

// Guards are pure request-scoped checks layered after Authenticate. Each is
// a strict superset of the previous level's preconditions and short-circuits
// before the wrapped handler runs.

// RequireVerified ensures the authenticated account is VERIFIED.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("access token required")
		}
		if claims.Status != domain.UserStatusVerified {
			return apperrors.NewForbidden("account not verified")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the authenticated account holds the ADMIN role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated("access token required")
		}
		if claims.Role != domain.UserRoleAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
