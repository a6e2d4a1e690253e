package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riya-portal/internal/pkg/jwt"
)

type tokenSet map[string]bool

func (s tokenSet) VerifySession(_ context.Context, token string) (jwt.Claims, error) {
	if s[token] {
		return jwt.Claims{}, nil
	}
	return jwt.Claims{}, errors.New("bad token")
}

type panickingVerifier struct{}

func (panickingVerifier) VerifySession(context.Context, string) (jwt.Claims, error) {
	panic("verifier exploded")
}

func newGuardedApp(t *testing.T, sessions SessionVerifier) *fiber.App {
	t.Helper()
	cfg := DefaultRouteGuardConfig()
	cfg.CookieName = "userToken"
	cfg.Sessions = sessions

	g, err := NewRouteGuard(cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(g.Middleware())
	app.Get("/*", func(c fiber.Ctx) error {
		return c.SendString("page " + c.Path())
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "userToken", Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRouteGuard_DecisionMatrix(t *testing.T) {
	app := newGuardedApp(t, tokenSet{"good": true})

	tests := []struct {
		name     string
		path     string
		cookie   string
		status   int
		location string
	}{
		{"public anonymous", "/login", "", http.StatusOK, ""},
		{"public authenticated", "/login", "good", http.StatusFound, "/admin-dashboard"},
		{"protected anonymous", "/admin-dashboard", "", http.StatusFound, "/login"},
		{"protected nested anonymous", "/admin-dashboard/job-posting", "", http.StatusFound, "/login"},
		{"protected authenticated", "/admin-dashboard/all-contacts", "good", http.StatusOK, ""},
		{"forged cookie is anonymous", "/admin-dashboard", "forged", http.StatusFound, "/login"},
		{"forged cookie may see login", "/forgot-password", "forged", http.StatusOK, ""},
		{"out of scope page", "/career", "", http.StatusOK, ""},
		{"out of scope with session", "/contact", "good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, tt.path, tt.cookie)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get(fiber.HeaderLocation))
		})
	}
}

func TestRouteGuard_ClearsRejectedCookie(t *testing.T) {
	app := newGuardedApp(t, tokenSet{})

	resp := get(t, app, "/admin-dashboard", "expired")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "userToken" && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "rejected session cookie should be cleared")
}

func TestRouteGuard_FailsClosed(t *testing.T) {
	app := newGuardedApp(t, panickingVerifier{})

	resp := get(t, app, "/admin-dashboard", "anything")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/error", resp.Header.Get(fiber.HeaderLocation))
}

func TestRouteGuard_PresenceOnlyWithoutVerifier(t *testing.T) {
	app := newGuardedApp(t, nil)

	resp := get(t, app, "/admin-dashboard", "whatever")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/login", "whatever")
	assert.Equal(t, "/admin-dashboard", resp.Header.Get(fiber.HeaderLocation))
}

func TestNewRouteGuard_RejectsBadConfig(t *testing.T) {
	cfg := DefaultRouteGuardConfig()
	cfg.Public = []string{"/login/[oops"}
	_, err := NewRouteGuard(cfg)
	assert.Error(t, err)

	cfg = DefaultRouteGuardConfig()
	cfg.ErrorPath = ""
	_, err = NewRouteGuard(cfg)
	assert.Error(t, err)
}
