package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/service/session"
)

type SessionHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewSessionHandler(store *app.Store, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		store: store,
		log:   log,
	}
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sess, err := h.store.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sess)
}

func (h *SessionHandler) ListBySite(c *fiber.Ctx) error {
	sessions, err := h.store.ListSessions(c.UserContext(), c.Params("id"), domain.SessionStatus(c.Query("status")))
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func (h *SessionHandler) End(c *fiber.Ctx) error {
	sess, err := h.store.EndSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sess)
}

type ReassignRequest struct {
	BayID string `json:"bay_id"`
}

func (h *SessionHandler) Reassign(c *fiber.Ctx) error {
	var req ReassignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := h.store.ReassignBay(c.UserContext(), c.Params("id"), req.BayID)
	if err != nil {
		return err
	}
	return c.JSON(sess)
}

type CheckoutRequest struct {
	Code string `json:"code"`
}

// Checkout is the kiosk flow: the driver types the reservation code.
func (h *SessionHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ok, sess, err := h.store.EndSessionByCode(c.UserContext(), req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "No active session for code"})
	}
	return c.JSON(fiber.Map{"ok": true, "session": sess})
}

func (h *SessionHandler) Cost(c *fiber.Ctx) error {
	cost, err := h.store.EstimateCost(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cost)
}

func (h *SessionHandler) StartExpress(c *fiber.Ctx) error {
	var req session.ExpressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	userID, err := actingFor(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = userID

	x, err := h.store.StartExpressCharge(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(x)
}

func (h *SessionHandler) EndExpress(c *fiber.Ctx) error {
	x, err := h.store.EndExpressCharge(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(x)
}
