package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestDefaultMessage(t *testing.T) {
	cases := map[int]string{
		200: MessageOK,
		204: MessageOK,
		202: MessageAccepted,
		409: MessageConflict,
		418: MessageError,
		502: MessageBadGateway,
		504: MessageInternalServerError,
	}
	for status, want := range cases {
		if got := DefaultMessage(status); got != want {
			t.Fatalf("DefaultMessage(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestWrite_ClampsStatusAndFillsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/bad", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })
	app.Get("/created", func(c fiber.Ctx) error { return Created(c, "", map[string]int{"n": 1}) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != 500 || env.Status != 500 || env.Message != MessageInternalServerError {
		t.Fatalf("unexpected envelope %d %+v", resp.StatusCode, env)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/created", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	env = Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated || env.Message != MessageCreated || env.Data == nil {
		t.Fatalf("unexpected envelope %d %+v", resp.StatusCode, env)
	}
}
