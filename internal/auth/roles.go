package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kintai-system/attendance-api/internal/domain"
	apperrors "github.com/kintai-system/attendance-api/pkg/util/errorutil"
)

const msgForbidden = "権限がありません"

// RequireRole ensures the access token carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(msgAuthRequired)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role()]; !exists {
			return apperrors.NewForbidden(msgForbidden)
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal has been loaded.
func RequireAuthenticated() fiber.Handler {
	return RequireRole()
}
