package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"riya-portal/internal/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports store reachability. The database is required; the
// cache is reported but never fails the check.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "ok", "cache": "ok"}
	healthy := true

	if h.db == nil || h.db.Ping(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		status["cache"] = "unavailable"
	}

	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", status)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, status)
}
