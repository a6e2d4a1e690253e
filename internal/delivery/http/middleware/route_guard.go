package middleware

import (
	"fmt"
	"log"
	"strings"

	"riya-portal/internal/guard"

	"github.com/gofiber/fiber/v3"
)

type RouteGuardConfig struct {
	// Scope selects the pages the guard intercepts; other paths pass through.
	Scope []string
	// Public lists the pages reserved for anonymous visitors.
	Public []string

	LoginPath string
	HomePath  string
	ErrorPath string

	CookieName string
	// Sessions verifies the cookie. When nil, cookie presence alone counts
	// as a session.
	Sessions SessionVerifier
	Logger   *log.Logger
}

func DefaultRouteGuardConfig() RouteGuardConfig {
	return RouteGuardConfig{
		Scope: []string{
			"/login",
			"/forgot-password",
			"/resetpassword",
			"/admin-dashboard",
			"/admin-dashboard/**",
		},
		Public:    []string{"/login", "/forgot-password", "/resetpassword"},
		LoginPath: "/login",
		HomePath:  "/admin-dashboard",
		ErrorPath: "/error",
	}
}

type RouteGuard struct {
	scope  *guard.Matcher
	policy *guard.Policy
	cfg    RouteGuardConfig
	logger *log.Logger
}

func NewRouteGuard(cfg RouteGuardConfig) (*RouteGuard, error) {
	scope, err := guard.NewMatcher(cfg.Scope...)
	if err != nil {
		return nil, err
	}
	policy, err := guard.NewPolicy(cfg.Public...)
	if err != nil {
		return nil, err
	}
	if cfg.LoginPath == "" || cfg.HomePath == "" || cfg.ErrorPath == "" {
		return nil, fmt.Errorf("route guard: login, home and error paths are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &RouteGuard{scope: scope, policy: policy, cfg: cfg, logger: logger}, nil
}

func (g *RouteGuard) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		p, err := guard.Normalize(c.Path())
		if err == nil && !g.scope.Match(p) {
			return c.Next()
		}

		decision, err := g.decide(c)
		if err != nil {
			g.logger.Printf("[Guard] failing closed path=%s err=%v", c.Path(), err)
			return g.redirect(c, g.cfg.ErrorPath)
		}

		switch decision {
		case guard.RedirectLogin:
			return g.redirect(c, g.cfg.LoginPath)
		case guard.RedirectHome:
			return g.redirect(c, g.cfg.HomePath)
		default:
			return c.Next()
		}
	}
}

func (g *RouteGuard) decide(c fiber.Ctx) (d guard.Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	class, err := g.policy.Classify(c.Path())
	if err != nil {
		return guard.Allow, err
	}
	return guard.Decide(class, g.authenticated(c)), nil
}

func (g *RouteGuard) authenticated(c fiber.Ctx) bool {
	token := strings.TrimSpace(c.Cookies(g.cfg.CookieName))
	if token == "" {
		return false
	}
	if g.cfg.Sessions == nil {
		return true
	}
	if _, err := g.cfg.Sessions.VerifySession(c.Context(), token); err != nil {
		// Stale or forged cookie: drop it so the browser stops sending it.
		c.ClearCookie(g.cfg.CookieName)
		return false
	}
	return true
}

func (g *RouteGuard) redirect(c fiber.Ctx, to string) error {
	return c.Redirect().Status(fiber.StatusFound).To(to)
}
