package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riya-portal/internal/pkg/jwt"
)

type claimsVerifier struct {
	token  string
	userID uuid.UUID
	err    error
}

func (v claimsVerifier) VerifySession(_ context.Context, token string) (jwt.Claims, error) {
	if v.err != nil {
		return jwt.Claims{}, v.err
	}
	if token != v.token {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return jwt.Claims{UserID: v.userID}, nil
}

func newAuthApp(v SessionVerifier) *fiber.App {
	em := NewErrorMiddleware(nil)
	app := fiber.New(fiber.Config{ErrorHandler: em.Handler()})
	app.Use(em.Middleware())
	app.Get("/admin", NewAuthMiddleware(v, "userToken").Middleware(), func(c fiber.Ctx) error {
		id, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
		return c.SendString(id.String())
	})
	return app
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Message
}

func TestAuthMiddleware_CookieAndBearer(t *testing.T) {
	id := uuid.New()
	app := newAuthApp(claimsVerifier{token: "good", userID: id})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "userToken", Value: "good"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app := newAuthApp(claimsVerifier{token: "good"})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", message(t, resp))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic good")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := newAuthApp(claimsVerifier{err: fmt.Errorf("session invalid: %w", jwt.ErrTokenExpired)})
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "userToken", Value: "old"})
	resp, err = expired.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Session expired", message(t, resp))
}
