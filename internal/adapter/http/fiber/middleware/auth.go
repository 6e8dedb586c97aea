package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/sigec-site/internal/domain"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// Identity trusts the presentation layer: the acting user and persona come
// from request headers. A missing role means Driver.
func Identity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing "+HeaderUserID+" header")
		}

		role := domain.RoleDriver
		if raw := strings.TrimSpace(c.Get(HeaderUserRole)); raw != "" {
			r, err := domain.ParseRole(raw)
			if err != nil {
				return err
			}
			role = r
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, role)
		return c.Next()
	}
}

// RequireOps restricts a route to operational roles.
func RequireOps() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !domain.HasOperationalAccess(Role(c)) {
			return fiber.NewError(fiber.StatusForbidden, "Operational access required")
		}
		return c.Next()
	}
}

// RequireSuspensionAdmin restricts a route to roles that may clear suspensions.
func RequireSuspensionAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !domain.CanAdministerSuspensions(Role(c)) {
			return fiber.NewError(fiber.StatusForbidden, "Suspension administration required")
		}
		return c.Next()
	}
}

// UserID returns the acting user set by Identity.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Role returns the acting role set by Identity.
func Role(c *fiber.Ctx) domain.Role {
	r, _ := c.Locals(LocalUserRole).(domain.Role)
	return r
}
