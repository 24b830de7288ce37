package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/session"
)

// DefaultSessionCookie names the signed cookie carrying the browser session id.
const DefaultSessionCookie = "portal_sid"

const (
	sessionLocal = "session_manager"
	binderLocal  = "session_binder"
)

// ErrSessionUnavailable is returned when no session can be bound to the request.
var ErrSessionUnavailable = errors.New("session middleware not installed")

// SessionConfig configures the session binder.
type SessionConfig struct {
	Registry   *session.Registry
	Codec      *securecookie.SecureCookie
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	Logger     zerolog.Logger
}

type sessionBinder struct {
	cfg SessionConfig
}

// NewCookieCodec builds the signing codec. blockKey may be empty, in which case
// the cookie is signed but not encrypted.
func NewCookieCodec(hashKey, blockKey []byte, maxAge time.Duration) *securecookie.SecureCookie {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	codec := securecookie.New(hashKey, blockKey)
	if maxAge > 0 {
		codec.MaxAge(int(maxAge.Seconds()))
	}
	return codec
}

// Session binds the browser's session manager to the request when the signed
// cookie is present and valid. Requests without one stay anonymous until a
// handler calls EnsureSession.
func Session(cfg SessionConfig) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookie
	}
	cfg.Logger = cfg.Logger.With().Str("component", "session_middleware").Logger()
	binder := &sessionBinder{cfg: cfg}

	return func(c *fiber.Ctx) error {
		c.Locals(binderLocal, binder)

		raw := c.Cookies(cfg.CookieName)
		if raw == "" {
			return c.Next()
		}

		var sessionID string
		if err := cfg.Codec.Decode(cfg.CookieName, raw, &sessionID); err != nil || sessionID == "" {
			cfg.Logger.Debug().Err(err).Str("correlation_id", GetCorrelationID(c)).Msg("ignoring invalid session cookie")
			c.ClearCookie(cfg.CookieName)
			return c.Next()
		}

		manager, err := cfg.Registry.Get(c.UserContext(), sessionID)
		if err != nil {
			cfg.Logger.Warn().Err(err).Str("session_id", sessionID).Msg("session store unavailable")
		}
		c.Locals(sessionLocal, manager)
		return c.Next()
	}
}

// SessionFrom returns the manager bound to the request, if any.
func SessionFrom(c *fiber.Ctx) (*session.Manager, bool) {
	manager, ok := c.Locals(sessionLocal).(*session.Manager)
	return manager, ok && manager != nil
}

// SessionState is the state of the bound manager; anonymous requests have
// no session and are never loading.
func SessionState(c *fiber.Ctx) session.State {
	if manager, ok := SessionFrom(c); ok {
		return manager.State()
	}
	return session.State{}
}

// EnsureSession returns the bound manager, issuing a fresh session id and
// cookie when the browser has none yet.
func EnsureSession(c *fiber.Ctx) (*session.Manager, error) {
	if manager, ok := SessionFrom(c); ok {
		return manager, nil
	}
	binder, ok := c.Locals(binderLocal).(*sessionBinder)
	if !ok {
		return nil, ErrSessionUnavailable
	}

	sessionID := uuid.NewString()
	encoded, err := binder.cfg.Codec.Encode(binder.cfg.CookieName, sessionID)
	if err != nil {
		return nil, err
	}

	manager, err := binder.cfg.Registry.Get(c.UserContext(), sessionID)
	if err != nil {
		return nil, err
	}

	cookie := &fiber.Cookie{
		Name:     binder.cfg.CookieName,
		Value:    encoded,
		Path:     "/",
		HTTPOnly: true,
		Secure:   binder.cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if binder.cfg.MaxAge > 0 {
		cookie.MaxAge = int(binder.cfg.MaxAge.Seconds())
	}
	c.Cookie(cookie)
	c.Locals(sessionLocal, manager)
	return manager, nil
}
