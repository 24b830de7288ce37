package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/middleware"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

type verifierFunc func(ctx context.Context, token string) error

func (f verifierFunc) VerifyToken(ctx context.Context, token string) error {
	return f(ctx, token)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// portal is a fiber app with the session binder and the gate installed.
type portal struct {
	app      *fiber.App
	registry *session.Registry
	codec    *securecookie.SecureCookie
}

func newPortal(t *testing.T) *portal {
	t.Helper()

	verifier := verifierFunc(func(context.Context, string) error { return nil })
	registry := session.NewRegistry(session.NewMemoryStore(), verifier, zerolog.Nop())
	codec := middleware.NewCookieCodec(testHashKey, nil, time.Hour)

	app := fiber.New()
	app.Use(middleware.CorrelationID())
	app.Use(middleware.Session(middleware.SessionConfig{
		Registry: registry,
		Codec:    codec,
		MaxAge:   time.Hour,
		Logger:   zerolog.Nop(),
	}))
	app.Use(middleware.Gate(middleware.GateConfig{Grace: 50 * time.Millisecond}))

	return &portal{app: app, registry: registry, codec: codec}
}

// login stores a session for role and returns the cookie that selects it.
func (p *portal) login(t *testing.T, role models.Role) *http.Cookie {
	t.Helper()

	sessionID := "sid-" + string(role)
	manager, err := p.registry.Get(context.Background(), sessionID)
	require.NoError(t, err)

	identity := models.Identity{ID: "u-1", Role: role, Email: "user@school.test", FullName: "Asha Rao", Name: "Asha Rao"}
	require.NoError(t, manager.Login(context.Background(), "token-"+string(role), identity))

	encoded, err := p.codec.Encode(middleware.DefaultSessionCookie, sessionID)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.DefaultSessionCookie, Value: encoded}
}

func (p *portal) do(t *testing.T, method, target string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := p.app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.DefaultSessionCookie {
			return cookie
		}
	}
	return nil
}

func decodeResponse(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var body envelope
	decodeResponse(t, resp, &body)
	return body
}
