package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const CtxRequestIDKey = "request_id"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)
		c.Locals(CtxRequestIDKey, rid)

		err := c.Next()

		// errors are rendered by the outer error middleware, so the status
		// here may still be the default 200 for a failed handler
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"HTTP access | rid=%s method=%s path=%s status=%d latency=%s ip=%s ua=%q",
				rid, c.Method(), c.OriginalURL(), status, time.Since(start), c.IP(), c.Get("User-Agent"),
			)
		}

		return err
	}
}
