package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sigec-site/internal/app"
)

// AdminHandler serves exports and demo maintenance
type AdminHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewAdminHandler(store *app.Store, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		store: store,
		log:   log,
	}
}

func (h *AdminHandler) ExportReservations(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.store.ExportReservationsCSV(c.UserContext(), &buf); err != nil {
		return err
	}
	return sendCSV(c, "reservas.csv", buf.Bytes())
}

func (h *AdminHandler) ExportSessions(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.store.ExportSessionsCSV(c.UserContext(), &buf); err != nil {
		return err
	}
	return sendCSV(c, "sesiones.csv", buf.Bytes())
}

func sendCSV(c *fiber.Ctx, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(body)
}

func (h *AdminHandler) Reset(c *fiber.Ctx) error {
	if err := h.store.Reset(c.UserContext()); err != nil {
		return err
	}
	h.log.Warn("Demo state reset", zap.String("user_id", middleware.UserID(c)))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) Sweep(c *fiber.Ctx) error {
	res, err := h.store.SweepExpired(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(res)
}
