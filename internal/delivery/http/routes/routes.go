package routes

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/static"

	"riya-portal/internal/delivery/http/handler"
	"riya-portal/internal/delivery/http/middleware"
	"riya-portal/internal/ws"
)

// Registry holds everything the HTTP surface is built from. Handlers left
// nil simply have their routes skipped.
type Registry struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Career  *handler.CareerHandler
	Posting *handler.PostingHandler
	Contact *handler.ContactHandler
	Feed    *ws.Handler

	APIAuth *middleware.AuthMiddleware
	Guard   *middleware.RouteGuard

	// StaticDir holds the site pages; empty disables page serving.
	StaticDir string
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerFeed(app)
	r.registerPages(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health == nil {
		return
	}
	app.Get("/health", r.Health.Health)
}

func (r *Registry) registerAPI(app *fiber.App) {
	users := app.Group("/api/users")
	registerPublic(users, r)

	if r.APIAuth == nil {
		return
	}
	admin := users.Group("", r.APIAuth.Middleware())
	registerAdmin(admin, r)
}

func (r *Registry) registerFeed(app *fiber.App) {
	if r.Feed == nil || r.APIAuth == nil {
		return
	}
	app.Get("/ws/admin", r.APIAuth.Middleware(), r.Feed.HandleAdminFeed)
}

// registerPages mounts the route guard ahead of the static site so the
// login and dashboard pages are gated before any file is served.
func (r *Registry) registerPages(app *fiber.App) {
	if r.Guard != nil {
		app.Use(r.Guard.Middleware())
	}
	if strings.TrimSpace(r.StaticDir) == "" {
		return
	}
	app.Get("/*", static.New(r.StaticDir))
}
