package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sigec-site/internal/domain"
)

func parseBody(c *fiber.Ctx, v interface{}) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	return nil
}

// actingFor resolves the user an operation applies to. Drivers always act
// for themselves; operational roles may name another user.
func actingFor(c *fiber.Ctx, requested string) (string, error) {
	self := middleware.UserID(c)
	if requested == "" || requested == self {
		return self, nil
	}
	if !domain.HasOperationalAccess(middleware.Role(c)) {
		return "", fiber.NewError(fiber.StatusForbidden, "Cannot act for another user")
	}
	return requested, nil
}
