package middleware_test

import (
	"context"
	"encoding/json"
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

type gateFixture struct {
	app   *fiber.App
	store *session.MemoryStore
	codec *securecookie.SecureCookie
}

func newGateFixture(t *testing.T, verifier session.Verifier, grace time.Duration) gateFixture {
	t.Helper()
	store := session.NewMemoryStore()
	registry := session.NewRegistry(store, verifier, zerolog.Nop())
	codec := middleware.NewCookieCodec(testHashKey, nil, time.Hour)

	app := newSessionApp(t, registry, codec)
	app.Use(middleware.Gate(middleware.GateConfig{Grace: grace}))
	render := func(c *fiber.Ctx) error { return c.SendString("rendered " + c.Path()) }
	for _, path := range []string{"/", "/admin/login", "/admin/dashboard", "/admin/students/s1", "/student/dashboard", "/health"} {
		app.Get(path, render)
	}
	return gateFixture{app: app, store: store, codec: codec}
}

func (f gateFixture) persist(t *testing.T, sid string, identity models.Identity) {
	t.Helper()
	user, err := json.Marshal(identity)
	require.NoError(t, err)
	require.NoError(t, f.store.Save(context.Background(), sid, session.Entries{Token: "tok-" + sid, User: user}))
}

func (f gateFixture) get(t *testing.T, path, sid string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		encoded, err := f.codec.Encode(middleware.DefaultSessionCookie, sid)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.DefaultSessionCookie, Value: encoded})
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestGateAnonymous(t *testing.T) {
	fixture := newGateFixture(t, acceptAll(), time.Second)

	resp := fixture.get(t, "/admin/dashboard", "")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))

	resp = fixture.get(t, "/admin/students/s1", "")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))

	resp = fixture.get(t, "/student/dashboard", "")
	require.Equal(t, "/student/login", resp.Header.Get(fiber.HeaderLocation))

	resp = fixture.get(t, "/", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = fixture.get(t, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGateRoleMismatchGoesToLanding(t *testing.T) {
	fixture := newGateFixture(t, acceptAll(), time.Second)
	fixture.persist(t, "sid-admin", models.Identity{ID: "a1", Role: models.RoleAdmin})

	resp := fixture.get(t, "/student/dashboard", "sid-admin")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp = fixture.get(t, "/admin/dashboard", "sid-admin")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGatePublicOnlySendsSessionToDashboard(t *testing.T) {
	fixture := newGateFixture(t, acceptAll(), time.Second)
	fixture.persist(t, "sid-student", models.Identity{ID: "s1", Role: models.RoleStudent})

	resp := fixture.get(t, "/admin/login", "sid-student")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/student/dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestGateWaitsWhileVerifying(t *testing.T) {
	release := make(chan error, 1)
	verifier := verifierFunc(func(ctx context.Context, _ string) error {
		select {
		case err := <-release:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	fixture := newGateFixture(t, verifier, 0)
	fixture.persist(t, "sid-slow", models.Identity{ID: "a1", Role: models.RoleAdmin})

	resp := fixture.get(t, "/admin/dashboard", "sid-slow")
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))

	var body struct {
		Data struct {
			Loading bool `json:"loading"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Data.Loading)

	release <- nil
	require.Eventually(t, func() bool {
		return fixture.get(t, "/admin/dashboard", "sid-slow").StatusCode == fiber.StatusOK
	}, time.Second, 10*time.Millisecond)
}

func TestGateRevokedSessionRedirectsToLogin(t *testing.T) {
	verifier := verifierFunc(func(context.Context, string) error {
		return session.ErrTokenExpired
	})
	fixture := newGateFixture(t, verifier, time.Second)
	fixture.persist(t, "sid-revoked", models.Identity{ID: "a1", Role: models.RoleAdmin})

	resp := fixture.get(t, "/admin/dashboard", "sid-revoked")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get(fiber.HeaderLocation))
	require.Zero(t, fixture.store.Len())
}
