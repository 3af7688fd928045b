package middleware

import (
	"strconv"
	"time"

	"jobboard/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

// Metrics records request count and latency per route template, so
// /jobs/:id stays one series regardless of the id.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		method := c.Method()

		metrics.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return err
	}
}
