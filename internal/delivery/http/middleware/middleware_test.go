package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"app 4xx", NewAppError(fiber.StatusNotFound, "Job not found", nil, nil), 404, "Job not found"},
		{"app 4xx default msg", NewAppError(fiber.StatusConflict, "", nil, nil), 409, "conflict"},
		{"app 5xx hidden", NewAppError(fiber.StatusInternalServerError, "db exploded", nil, errors.New("x")), 500, "internal server error"},
		{"app 503 kept", NewAppError(fiber.StatusServiceUnavailable, "Saved jobs are unavailable", "x", nil), 503, "Saved jobs are unavailable"},
		{"fiber 404", fiber.ErrNotFound, 404, "Not Found"},
		{"plain", errors.New("boom"), 500, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg, _ := normalizeError(tc.err)
			if status != tc.status || msg != tc.msg {
				t.Fatalf("got %d %q, want %d %q", status, msg, tc.status, tc.msg)
			}
		})
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/boom", func(c fiber.Ctx) error { panic("kaboom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]bool{
		"Bearer abc":   true,
		"bearer abc":   true,
		"Bearer   abc": true,
		"Basic abc":    false,
		"Bearer":       false,
		"Bearer  ":     false,
		"":             false,
	}
	for header, want := range cases {
		if _, ok := bearerTokenFromHeader(header); ok != want {
			t.Fatalf("header %q: got %v want %v", header, ok, want)
		}
	}
}

func TestAuthMiddleware_OptionalAndRequired(t *testing.T) {
	svc := jwt.NewHMACService("secret", time.Hour)
	userID := uuid.New()
	tok, err := svc.GenerateAccessToken(userID, "a@b.c")
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	auth := NewAuthMiddleware(svc)
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	seen := uuid.Nil
	app.Get("/optional", auth.Optional(), func(c fiber.Ctx) error {
		seen, _ = c.Locals(CtxUserIDKey).(uuid.UUID)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/required", auth.Middleware(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, _ := app.Test(req)
	if resp.StatusCode != fiber.StatusNoContent || seen != uuid.Nil {
		t.Fatalf("optional auth must pass bad tokens anonymously, status=%d seen=%s", resp.StatusCode, seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	if _, err := app.Test(req); err != nil || seen != userID {
		t.Fatalf("expected user %s, got %s (err=%v)", userID, seen, err)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/required", nil))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/required", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestMetricsMiddleware_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/jobs/:id", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/jobs/remotive_1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Fatalf("expected 418, got %d", resp.StatusCode)
	}
}
