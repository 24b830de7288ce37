package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/successpath-portal/internal/display"
	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/gate"
	"github.com/noah-isme/successpath-portal/internal/observability"
	"github.com/noah-isme/successpath-portal/internal/session"
	"github.com/noah-isme/successpath-portal/internal/utils"
)

// GateConfig tunes the route gate.
type GateConfig struct {
	// Grace is how long a request waits for an outstanding token verification
	// before answering with the loading view.
	Grace time.Duration
	// RetryAfter is advertised on loading responses.
	RetryAfter time.Duration
}

// Gate applies the view table to every request. Paths outside the table pass
// through untouched.
func Gate(cfg GateConfig) fiber.Handler {
	observability.RegisterMetrics()
	if cfg.RetryAfter <= 0 {
		cfg.RetryAfter = time.Second
	}
	retryAfter := strconv.Itoa(int((cfg.RetryAfter + time.Second - 1) / time.Second))

	return func(c *fiber.Ctx) error {
		requirement, ok := gate.RequirementFor(c.Path())
		if !ok {
			return c.Next()
		}

		state := SessionState(c)
		if manager, bound := SessionFrom(c); bound {
			state = manager.Await(c.UserContext(), cfg.Grace)
		}

		decision := gate.Decide(state, requirement)
		observability.GateDecisions().WithLabelValues(decision.Outcome.String()).Inc()

		switch decision.Outcome {
		case gate.Wait:
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "loading", SessionView(state, c.Path()))
		case gate.Redirect:
			return c.Redirect(decision.Target, fiber.StatusSeeOther)
		default:
			return c.Next()
		}
	}
}

// SessionView renders state for the browser.
func SessionView(state session.State, current string) dto.SessionView {
	view := dto.SessionView{
		Authenticated: state.Authenticated(),
		Loading:       state.Loading,
		Menu:          []dto.MenuItem{},
	}
	if state.Identity != nil {
		identity := *state.Identity
		view.Role = identity.Role
		view.DisplayName = identity.DisplayName()
		view.Initials = display.Initials(view.DisplayName)
		view.Identity = &identity
		view.Menu = gate.Menu(identity.Role, current)
	}
	return view
}
