package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	health   *handler.HealthHandler
	refresh  *handler.CacheRefreshHandler
	ws       *ws.Handler
	handlers v1.Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(health *handler.HealthHandler, refresh *handler.CacheRefreshHandler, wsHandler *ws.Handler, handlers v1.Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{health: health, refresh: refresh, ws: wsHandler, handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	if r.ws != nil {
		app.Get("/ws/jobs", r.ws.HandleJobsWS)
	}
	if r.refresh != nil {
		app.Post("/internal/cache/refresh", r.refresh.HandleRefresh)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.handlers, r.auth)
}
