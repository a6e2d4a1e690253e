package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"riya-portal/internal/config"
	"riya-portal/internal/delivery/http/handler"
	"riya-portal/internal/delivery/http/middleware"
	"riya-portal/internal/delivery/http/routes"
	"riya-portal/internal/ws"
)

// bodyLimitSlack leaves room for the form fields around the resume so an
// oversize file is reported by the intake pipeline rather than by fiber.
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) (*App, error) {
	cfg := c.Config

	errMw := middleware.NewErrorMiddleware(c.Logger)
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    int(cfg.Upload.MaxResumeBytes) + bodyLimitSlack,
		ErrorHandler: errMw.Handler(),
	})

	f.Use(errMw.Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger, "/health").Middleware())

	guardCfg := middleware.DefaultRouteGuardConfig()
	guardCfg.CookieName = cfg.Session.CookieName
	guardCfg.Sessions = c.Auth
	guardCfg.Logger = c.Logger
	guard, err := middleware.NewRouteGuard(guardCfg)
	if err != nil {
		return nil, fmt.Errorf("route guard: %w", err)
	}

	reg := &routes.Registry{
		Health:  handler.NewHealthHandler(c.DB, c.Cache),
		Auth:    handler.NewAuthHandler(c.Auth, handler.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure}),
		Career:  handler.NewCareerHandler(c.Intake, c.Career, cfg.Upload.MaxResumeBytes),
		Posting: handler.NewPostingHandler(c.Postings),
		Contact: handler.NewContactHandler(c.Contacts),
		Feed:    ws.NewHandler(c.Hub, c.Logger),

		APIAuth: middleware.NewAuthMiddleware(c.Auth, cfg.Session.CookieName),
		Guard:   guard,

		StaticDir: cfg.App.StaticDir,
	}
	reg.Register(f)

	return &App{Fiber: f, Container: c}, nil
}

// Bootstrap wires the container and HTTP app. The returned cleanup stops
// the live feed and closes the stores.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	ctx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return a, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
