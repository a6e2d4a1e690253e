package middleware

import (
	"context"
	"errors"
	"strings"

	"riya-portal/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxClaimsKey = "session_claims"
)

// SessionVerifier resolves a session token to its claims. Implementations
// check signature, expiry and revocation.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (jwt.Claims, error)
}

// AuthMiddleware protects the back-office API. The session is read from the
// session cookie, or from a Bearer header for non-browser clients.
type AuthMiddleware struct {
	sessions   SessionVerifier
	cookieName string
}

func NewAuthMiddleware(sessions SessionVerifier, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookieName: cookieName}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := SessionToken(c, m.cookieName)
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.sessions.VerifySession(c.Context(), token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Session expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxClaimsKey, claims)

		return c.Next()
	}
}

// SessionToken returns the session token carried by the request, preferring
// the cookie over the Authorization header.
func SessionToken(c fiber.Ctx, cookieName string) string {
	if v := strings.TrimSpace(c.Cookies(cookieName)); v != "" {
		return v
	}
	tok, _ := bearerTokenFromHeader(c.Get("Authorization"))
	return tok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
