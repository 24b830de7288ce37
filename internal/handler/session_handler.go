package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/utils"
)

// SessionHandler reports the browser session to the client shell.
type SessionHandler struct {
	grace time.Duration
}

// NewSessionHandler constructs the handler. grace bounds how long the request
// waits for an outstanding token verification.
func NewSessionHandler(grace time.Duration) *SessionHandler {
	return &SessionHandler{grace: grace}
}

// Register attaches the session route.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Get("/session", h.current)
}

func (h *SessionHandler) current(c *fiber.Ctx) error {
	state := middleware.SessionState(c)
	if manager, ok := middleware.SessionFrom(c); ok {
		state = manager.Await(c.UserContext(), h.grace)
	}

	current := c.Query("path")
	return utils.SendSuccess(c, "session retrieved", middleware.SessionView(state, current))
}
