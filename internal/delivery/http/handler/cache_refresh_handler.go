package handler

import (
	"context"
	"crypto/subtle"
	"log"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type cacheRefresher interface {
	RunOnce(ctx context.Context)
}

// CacheRefreshHandler lets operators force a warm-up outside the cron
// schedule. It requires X-Internal-Token.
type CacheRefreshHandler struct {
	token     string
	refresher cacheRefresher
	logger    *log.Logger
}

func NewCacheRefreshHandler(token string, refresher cacheRefresher, logger *log.Logger) *CacheRefreshHandler {
	return &CacheRefreshHandler{token: strings.TrimSpace(token), refresher: refresher, logger: logger}
}

func (h *CacheRefreshHandler) HandleRefresh(c fiber.Ctx) error {
	tok := strings.TrimSpace(c.Get("X-Internal-Token"))
	if h.token == "" || tok == "" || subtle.ConstantTimeCompare([]byte(tok), []byte(h.token)) != 1 {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	if h.refresher == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Refresh is unavailable", nil, nil)
	}

	go h.refresher.RunOnce(context.Background())
	if h.logger != nil {
		h.logger.Printf("[Warmup] manual refresh requested ip=%s", c.IP())
	}

	return response.Accepted(c, "Refresh started")
}
