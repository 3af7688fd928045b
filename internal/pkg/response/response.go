// Package response writes the {status, message, data} envelope every API
// route answers with, errors included.
package response

import "github.com/gofiber/fiber/v3"

type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	MessageOK                  = "ok"
	MessageCreated             = "created"
	MessageAccepted            = "accepted"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageInternalServerError = "internal server error"
	MessageBadGateway          = "upstream service failed"
	MessageUnavailable         = "service unavailable"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:                  MessageOK,
	fiber.StatusCreated:             MessageCreated,
	fiber.StatusAccepted:            MessageAccepted,
	fiber.StatusBadRequest:          MessageBadRequest,
	fiber.StatusUnauthorized:        MessageUnauthorized,
	fiber.StatusNotFound:            MessageNotFound,
	fiber.StatusConflict:            MessageConflict,
	fiber.StatusInternalServerError: MessageInternalServerError,
	fiber.StatusBadGateway:          MessageBadGateway,
	fiber.StatusServiceUnavailable:  MessageUnavailable,
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func Created(c fiber.Ctx, message string, data any) error {
	return write(c, fiber.StatusCreated, message, data)
}

// Accepted answers 202 for work that continues after the response.
func Accepted(c fiber.Ctx, message string) error {
	return write(c, fiber.StatusAccepted, message, nil)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return write(c, status, message, data)
}

func write(c fiber.Ctx, status int, message string, data any) error {
	if status < 100 || status > 599 {
		status = fiber.StatusInternalServerError
	}
	if message == "" {
		message = DefaultMessage(status)
	}
	return c.Status(status).JSON(Envelope{Status: status, Message: message, Data: data})
}

// DefaultMessage is the envelope message used when a caller passes none.
func DefaultMessage(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	if status >= 200 && status < 300 {
		return MessageOK
	}
	return MessageError
}
