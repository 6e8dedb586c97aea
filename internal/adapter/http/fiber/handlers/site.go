package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
)

type SiteHandler struct {
	store *app.Store
	log   *zap.Logger
}

func NewSiteHandler(store *app.Store, log *zap.Logger) *SiteHandler {
	return &SiteHandler{
		store: store,
		log:   log,
	}
}

func (h *SiteHandler) DLM(c *fiber.Ctx) error {
	snap, err := h.store.AllocatePower(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(snap)
}

func (h *SiteHandler) KPIs(c *fiber.Ctx) error {
	kpis, err := h.store.SiteKPIs(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(kpis)
}

func (h *SiteHandler) GetEnergyPolicy(c *fiber.Ctx) error {
	p, err := h.store.GetEnergyPolicy(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *SiteHandler) UpdateEnergyPolicy(c *fiber.Ctx) error {
	var patch domain.EnergyPolicyPatch
	if err := parseBody(c, &patch); err != nil {
		return err
	}
	p, err := h.store.UpdateEnergyPolicy(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *SiteHandler) GetPricingPolicy(c *fiber.Ctx) error {
	p, err := h.store.GetPricingPolicy(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if p == nil {
		return fiber.NewError(fiber.StatusNotFound, "Site has no pricing policy")
	}
	return c.JSON(p)
}
