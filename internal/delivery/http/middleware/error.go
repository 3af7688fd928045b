package middleware

import (
	"errors"
	"log"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// Middleware recovers panics and renders every returned error as the
// semantic envelope. 5xx details never reach the client.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logf("[HTTP] panic recovered path=%s: %v", c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logf("[HTTP] error path=%s status=%d: %v", c.Path(), status, err)
		}
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) logf(format string, args ...any) {
	if m == nil || m.logger == nil {
		log.Printf(format, args...)
		return
	}
	m.logger.Printf(format, args...)
}

func statusFromError(err error) int {
	status, _, _ := normalizeError(err)
	return status
}

func normalizeError(err error) (int, string, any) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return publicStatus(appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return publicStatus(fiberErr.Code, fiberErr.Message, nil)
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

// publicStatus hides internal failures. 502 and 503 keep their message.
func publicStatus(status int, msg string, data any) (int, string, any) {
	switch {
	case status <= 0:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	case status == fiber.StatusBadGateway, status == fiber.StatusServiceUnavailable:
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	case status >= 500:
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}
	if msg == "" {
		msg = response.DefaultMessage(status)
	}
	return status, msg, data
}
