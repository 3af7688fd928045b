package handler

import (
	"context"
	"sort"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck pings one dependency. A nil check reports "disabled".
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	out := make(map[string]string, len(names))
	for _, name := range names {
		check := h.checks[name]
		switch {
		case check == nil:
			out[name] = "disabled"
		case check(ctx) != nil:
			out[name] = "down"
			status = fiber.StatusServiceUnavailable
		default:
			out[name] = "up"
		}
	}

	msg := "healthy"
	if status != fiber.StatusOK {
		msg = "degraded"
	}
	return response.Success(c, status, msg, fiber.Map{"checks": out, "time": time.Now().UTC()})
}
