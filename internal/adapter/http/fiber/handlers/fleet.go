package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/service/fleet"
)

type FleetHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewFleetHandler(store *app.Store, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		store: store,
		log:   log,
	}
}

func (h *FleetHandler) AddVehicle(c *fiber.Ctx) error {
	var v domain.Vehicle
	if err := parseBody(c, &v); err != nil {
		return err
	}
	out, err := h.store.AddVehicle(c.UserContext(), middleware.UserID(c), v)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FleetHandler) ListVehicles(c *fiber.Ctx) error {
	owner, err := actingFor(c, c.Query("owner_id"))
	if err != nil {
		return err
	}
	vs, err := h.store.ListVehicles(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return c.JSON(vs)
}

func (h *FleetHandler) UpdateVehicle(c *fiber.Ctx) error {
	var patch fleet.VehiclePatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	v, err := h.store.UpdateVehicle(c.UserContext(), middleware.UserID(c), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(v)
}

func (h *FleetHandler) RemoveVehicle(c *fiber.Ctx) error {
	if err := h.store.RemoveVehicle(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FleetHandler) AddGuest(c *fiber.Ctx) error {
	var g domain.Guest
	if err := parseBody(c, &g); err != nil {
		return err
	}
	g.HostUserID = middleware.UserID(c)
	out, err := h.store.AddGuest(c.UserContext(), g)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FleetHandler) ListGuests(c *fiber.Ctx) error {
	gs, err := h.store.ListGuests(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(gs)
}

func (h *FleetHandler) BookGuest(c *fiber.Ctx) error {
	var req fleet.GuestBooking
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.HostUserID = middleware.UserID(c)
	gr, err := h.store.BookGuestReservation(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(gr)
}

func (h *FleetHandler) SubmitReport(c *fiber.Ctx) error {
	var rep domain.UserReport
	if err := parseBody(c, &rep); err != nil {
		return err
	}
	rep.ReporterID = middleware.UserID(c)
	out, err := h.store.SubmitUserReport(c.UserContext(), rep)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *FleetHandler) ListReports(c *fiber.Ctx) error {
	reps, err := h.store.ListReports(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reps)
}

func (h *FleetHandler) OpenTicket(c *fiber.Ctx) error {
	var t domain.Ticket
	if err := parseBody(c, &t); err != nil {
		return err
	}
	out, err := h.store.OpenTicket(c.UserContext(), t)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

type TicketUpdateRequest struct {
	Status     domain.TicketStatus `json:"status"`
	AssigneeID string              `json:"assignee_id"`
}

func (h *FleetHandler) UpdateTicket(c *fiber.Ctx) error {
	var req TicketUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	t, err := h.store.UpdateTicketStatus(c.UserContext(), c.Params("id"), req.Status, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(t)
}

func (h *FleetHandler) ListTickets(c *fiber.Ctx) error {
	ts, err := h.store.ListTickets(c.UserContext(), c.Query("site_id"))
	if err != nil {
		return err
	}
	return c.JSON(ts)
}
