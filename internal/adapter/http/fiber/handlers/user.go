package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
)

type UserHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewUserHandler(store *app.Store, log *zap.Logger) *UserHandler {
	return &UserHandler{
		store: store,
		log:   log,
	}
}

type InfractionRequest struct {
	Type          domain.InfractionType `json:"type"`
	Reason        string                `json:"reason"`
	ReservationID string                `json:"reservation_id"`
}

func (h *UserHandler) RecordInfraction(c *fiber.Ctx) error {
	var req InfractionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	us, err := h.store.RecordInfraction(c.UserContext(), c.Params("id"), req.Type, req.Reason, req.ReservationID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(us)
}

func (h *UserHandler) ClearSuspension(c *fiber.Ctx) error {
	if err := h.store.ClearSuspension(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) GetSuspension(c *fiber.Ctx) error {
	userID, err := actingFor(c, c.Params("id"))
	if err != nil {
		return err
	}
	us, err := h.store.GetSuspension(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if us == nil {
		return c.JSON(fiber.Map{"user_id": userID, "total_points": 0, "is_active": false})
	}
	return c.JSON(us)
}

func (h *UserHandler) Eligibility(c *fiber.Ctx) error {
	userID, err := actingFor(c, c.Params("id"))
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	e, err := h.store.CanUserReserve(ctx, userID)
	if err != nil {
		return err
	}
	weekly, err := h.store.WeeklyReservations(ctx, userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"allowed":      e.Allowed,
		"reason":       e.Reason,
		"weekly_count": weekly,
		"user_id":      userID,
	})
}
