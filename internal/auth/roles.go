package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/leave-service/internal/domain"
	apperrors "github.com/spec-kit/leave-service/pkg/util"
)

// RequireRole compares the caller's role against the required one. Fails
// closed: any mismatch is a hard forbidden, never a warning.
func RequireRole(user *domain.User, required domain.Role) error {
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if user.Role != required {
		return apperrors.NewForbidden("insufficient role")
	}
	return nil
}

// RequireAuthenticated ensures a principal is present on the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the principal holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if err := RequireRole(principal.User, domain.RoleAdmin); err != nil {
			return err
		}
		return c.Next()
	}
}
