package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
	skip   map[string]struct{}
}

// NewAccessLogMiddleware logs one line per request. Paths in skip (e.g. the
// health probe) are not logged.
func NewAccessLogMiddleware(logger *log.Logger, skip ...string) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	m := &AccessLogMiddleware{logger: logger, skip: make(map[string]struct{}, len(skip))}
	for _, p := range skip {
		m.skip[p] = struct{}{}
	}
	return m
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		if _, ok := m.skip[c.Path()]; ok {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			// The error middleware has not rendered yet when this runs
			// outside of it; report the status it will pick.
			status, _, _ = normalizeError(err)
		}

		admin := "-"
		if id, ok := c.Locals(CtxUserIDKey).(uuid.UUID); ok {
			admin = id.String()
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s req_bytes=%d admin=%s ua=%q",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, time.Since(start),
			c.Request().Header.ContentLength(), admin, c.Get("User-Agent"),
		)

		return err
	}
}
