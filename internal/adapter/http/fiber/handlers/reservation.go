package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/service/reservation"
)

type ReservationHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewReservationHandler(store *app.Store, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		store: store,
		log:   log,
	}
}

func (h *ReservationHandler) Book(c *fiber.Ctx) error {
	var req reservation.BookRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	userID, err := actingFor(c, req.UserID)
	if err != nil {
		return err
	}
	req.UserID = userID

	r, err := h.store.BookReservation(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	r, err := h.store.GetReservation(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *ReservationHandler) List(c *fiber.Ctx) error {
	userID, err := actingFor(c, c.Query("user_id"))
	if err != nil {
		return err
	}
	filter := domain.ReservationFilter{UserID: userID, SiteID: c.Query("site_id")}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []domain.ReservationStatus{domain.ReservationStatus(status)}
	}
	rs, err := h.store.ListReservations(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(rs)
}

func (h *ReservationHandler) Confirm(c *fiber.Ctx) error {
	r, err := h.store.ConfirmReservation(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

type UpdateWindowRequest struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

func (h *ReservationHandler) UpdateWindow(c *fiber.Ctx) error {
	var req UpdateWindowRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	r, err := h.store.UpdateReservationWindow(c.UserContext(), c.Params("id"), req.StartAt, req.EndAt)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	var req CancelRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	r, err := h.store.CancelReservation(c.UserContext(), c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// Start checks the driver in and opens the charging session.
func (h *ReservationHandler) Start(c *fiber.Ctx) error {
	sess, err := h.store.StartSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *ReservationHandler) FindByCode(c *fiber.Ctx) error {
	r, err := h.store.FindReservationByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *ReservationHandler) Arrivals(c *fiber.Ctx) error {
	rs, err := h.store.ArrivalsBoard(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(rs)
}

func (h *ReservationHandler) Calendar(c *fiber.Ctx) error {
	var buf bytes.Buffer
	name, err := h.store.ReservationCalendar(c.UserContext(), c.Params("id"), &buf)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(buf.Bytes())
}
