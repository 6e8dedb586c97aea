// Package router assembles the HTTP API on a fiber app.
package router

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/middleware"
	wsAdapter "github.com/seu-repo/sigec-site/internal/adapter/websocket"
	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/service/health"
	"github.com/seu-repo/sigec-site/pkg/config"
)

// Options configures New. Hub may be nil to disable /ws/events; without
// Health only a static liveness probe is served.
type Options struct {
	AppName     string
	Health      *health.Service
	CORS        config.CORSConfig
	AccessLog   bool
	MetricsPath string
}

// New builds the fiber app with every route registered.
func New(store *app.Store, hub *wsAdapter.Hub, opts Options, log *zap.Logger) *fiber.App {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	fa := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		ServerHeader:          opts.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	fa.Use(recover.New())
	if opts.AccessLog {
		fa.Use(fiberlogger.New())
	}
	fa.Use(middleware.NewCORS(opts.CORS))

	if opts.Health != nil {
		health.NewFiberHandler(opts.Health).RegisterRoutes(fa)
	} else {
		fa.Get("/health/live", func(c *fiber.Ctx) error {
			return c.SendString("OK")
		})
	}

	metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	fa.Get(opts.MetricsPath, func(c *fiber.Ctx) error {
		metrics(c.Context())
		return nil
	})

	if hub != nil {
		fa.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		fa.Get("/ws/events", websocket.New(func(c *websocket.Conn) {
			hub.Serve(c, c.Query("user_id", "dashboard"), c.Query("site_id"))
		}))
	}

	v1 := fa.Group("/api/v1", middleware.Identity())
	ops := middleware.RequireOps()

	res := handlers.NewReservationHandler(store, log)
	v1.Post("/reservations", res.Book)
	v1.Get("/reservations", res.List)
	v1.Get("/reservations/code/:code", res.FindByCode)
	v1.Get("/reservations/:id", res.Get)
	v1.Get("/reservations/:id/calendar.ics", res.Calendar)
	v1.Post("/reservations/:id/confirm", res.Confirm)
	v1.Patch("/reservations/:id/window", res.UpdateWindow)
	v1.Post("/reservations/:id/cancel", res.Cancel)
	v1.Post("/reservations/:id/start", res.Start)
	v1.Get("/sites/:id/arrivals", ops, res.Arrivals)

	sess := handlers.NewSessionHandler(store, log)
	v1.Get("/sessions/:id", sess.Get)
	v1.Get("/sessions/:id/cost", sess.Cost)
	v1.Post("/sessions/:id/end", sess.End)
	v1.Post("/sessions/:id/reassign", ops, sess.Reassign)
	v1.Get("/sites/:id/sessions", ops, sess.ListBySite)
	v1.Post("/kiosk/checkout", sess.Checkout)
	v1.Post("/express", sess.StartExpress)
	v1.Post("/express/:id/end", sess.EndExpress)

	users := handlers.NewUserHandler(store, log)
	v1.Post("/users/:id/infractions", ops, users.RecordInfraction)
	v1.Get("/users/:id/suspension", users.GetSuspension)
	v1.Delete("/users/:id/suspension", middleware.RequireSuspensionAdmin(), users.ClearSuspension)
	v1.Get("/users/:id/eligibility", users.Eligibility)

	sites := handlers.NewSiteHandler(store, log)
	v1.Get("/sites/:id/dlm", ops, sites.DLM)
	v1.Get("/sites/:id/kpis", ops, sites.KPIs)
	v1.Get("/sites/:id/energy-policy", sites.GetEnergyPolicy)
	v1.Patch("/sites/:id/energy-policy", ops, sites.UpdateEnergyPolicy)
	v1.Get("/sites/:id/pricing", sites.GetPricingPolicy)

	fl := handlers.NewFleetHandler(store, log)
	v1.Post("/vehicles", fl.AddVehicle)
	v1.Get("/vehicles", fl.ListVehicles)
	v1.Patch("/vehicles/:id", fl.UpdateVehicle)
	v1.Delete("/vehicles/:id", fl.RemoveVehicle)
	v1.Post("/guests", fl.AddGuest)
	v1.Get("/guests", fl.ListGuests)
	v1.Post("/guest-reservations", fl.BookGuest)
	v1.Post("/reports", fl.SubmitReport)
	v1.Get("/reports", ops, fl.ListReports)
	v1.Post("/tickets", ops, fl.OpenTicket)
	v1.Patch("/tickets/:id", ops, fl.UpdateTicket)
	v1.Get("/tickets", ops, fl.ListTickets)

	admin := handlers.NewAdminHandler(store, log)
	v1.Get("/export/reservations.csv", ops, admin.ExportReservations)
	v1.Get("/export/sessions.csv", ops, admin.ExportSessions)
	v1.Post("/admin/sweep", ops, admin.Sweep)
	v1.Post("/admin/reset", ops, admin.Reset)

	return fa
}
