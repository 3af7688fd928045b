package ws

import (
	"log"
	"net/http"
	"strings"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades /ws/jobs connections and hands them to the hub.
type Handler struct {
	hub      *Hub
	tokens   jwt.Validator
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewHandler accepts a nil validator, in which case every connection is
// anonymous. An empty origins list accepts any Origin header.
func NewHandler(hub *Hub, tokens jwt.Validator, origins []string, logger *log.Logger) *Handler {
	return &Handler{
		hub:    hub,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		logger: logger,
	}
}

func originChecker(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// non-browser clients send no Origin
			return true
		}
		_, ok := allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
		return ok
	}
}

// HandleJobsWS upgrades /ws/jobs. A valid ?token= access token subscribes
// the connection to that user's saved-job events as well.
func (h *Handler) HandleJobsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	userID, err := h.subscriber(c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade error=%v origin=%q", err, r.Header.Get("Origin"))
			}
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})(c)
}

// subscriber resolves the optional token to a user id. No token is anonymous;
// a bad one is an error rather than a silent downgrade.
func (h *Handler) subscriber(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || h.tokens == nil {
		return uuid.Nil, nil
	}
	claims, err := h.tokens.ValidateAccessToken(raw)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
