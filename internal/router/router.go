package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/successpath-portal/internal/config"
	"github.com/noah-isme/successpath-portal/internal/gate"
	"github.com/noah-isme/successpath-portal/internal/handler"
	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	SessionHandler *handler.SessionHandler
	AdminHandler   *handler.AdminHandler
	StudentHandler *handler.StudentHandler

	// SessionMiddleware binds the browser session; GateMiddleware guards views.
	SessionMiddleware fiber.Handler
	GateMiddleware    fiber.Handler
	// LoginLimiter throttles login submissions. Optional.
	LoginLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	// Probes stay outside the session and the gate.
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	if deps.SessionMiddleware != nil {
		app.Use(deps.SessionMiddleware)
	}
	if deps.GateMiddleware != nil {
		app.Use(deps.GateMiddleware)
	}

	if deps.LoginLimiter != nil {
		limited := postOnly(deps.LoginLimiter)
		app.Use(gate.LoginPath(models.RoleAdmin), limited)
		app.Use(gate.LoginPath(models.RoleStudent), limited)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(app)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(app)
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.Register(app.Group("/admin"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app.Group("/student"))
	}

	// Anything else goes back to the landing view.
	app.Use(func(c *fiber.Ctx) error {
		return c.Redirect(gate.LandingPath, fiber.StatusSeeOther)
	})
}

func postOnly(next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		return next(c)
	}
}

// NewGate builds the gate middleware from configuration.
func NewGate(cfg config.Config) fiber.Handler {
	return middleware.Gate(middleware.GateConfig{Grace: cfg.SessionVerifyGrace})
}
