package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app over an already constructed container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	})

	registerGlobalMiddleware(f, c)
	buildRegistry(c).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container, starts background jobs and returns the app
// with a cleanup func that releases everything in reverse order.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("start background jobs: %w", err)
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func buildRegistry(c *Container) *routes.Registry {
	checks := map[string]handler.HealthCheck{"redis": nil, "database": nil}
	if c.Cache.Enabled() {
		checks["redis"] = c.Cache.Ping
	}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}

	auth := middleware.NewAuthMiddleware(c.Tokens)
	handlers := v1.Handlers{
		Jobs:            handler.NewJobsHandler(c.JobSearch, c.Profiles, c.Logger),
		JobDetail:       handler.NewJobDetailHandler(c.JobDetail),
		Internships:     handler.NewInternshipsHandler(c.Internships, c.Logger),
		Recommendations: handler.NewRecommendationsHandler(c.Recommendations),
		SavedJobs:       handler.NewSavedJobsHandler(c.SavedJobs),
		JobMatch:        handler.NewJobMatchHandler(c.JobMatch),
	}

	var refresh *handler.CacheRefreshHandler
	if c.Config.App.InternalToken != "" && c.Warmup != nil {
		refresh = handler.NewCacheRefreshHandler(c.Config.App.InternalToken, c.Warmup, c.Logger)
	}

	return routes.NewRegistry(
		handler.NewHealthHandler(checks),
		refresh,
		ws.NewHandler(c.Hub, c.Tokens, c.Config.App.WSAllowedOrigins, c.Logger),
		handlers,
		auth,
	)
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
