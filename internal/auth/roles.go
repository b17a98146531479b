package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-pos/internal/domain"
	apperrors "github.com/spec-kit/pharmacy-pos/pkg/util"
)

// RequireRoles gates a route on an explicit role set. It must be mounted after
// Middleware.Handle; a request without a principal is rejected outright.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthenticated(msgNotAuthorized)
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden(
				fmt.Sprintf("User role %s is not authorized to access this route", principal.Role))
		}
		return c.Next()
	}
}
