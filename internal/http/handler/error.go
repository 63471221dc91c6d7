package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"supportapi/internal/http/middleware"
	"supportapi/internal/service"
	"supportapi/internal/store"
	"supportapi/internal/validate"
)

// errorPayload is the error response body shared by every endpoint.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx reads the id stored by middleware.RequestID, if any.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError responds with the error envelope. code is the machine-readable
// short code ("INVALID_ID", "NOT_FOUND", ...); message is safe for callers
// and never carries internal detail.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates sentinel errors from the service and store
// layers into the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "application not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found")
	case errors.Is(err, store.ErrInvalidState):
		return writeError(c, fiber.StatusConflict, "INVALID_STATE", "operation not allowed in current application status")
	case errors.Is(err, store.ErrConflict):
		return writeError(c, fiber.StatusConflict, "CONFLICT", "application was modified concurrently, retry the request")
	case errors.Is(err, validate.ErrMissingField):
		return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "a required field is missing")
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "a field value is not acceptable")
	case errors.Is(err, validate.ErrUnsupportedType):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNSUPPORTED_TYPE", "declared document type is not supported")
	case errors.Is(err, validate.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNSUPPORTED_FORMAT", "file format is not allowed for the declared type")
	case errors.Is(err, validate.ErrFileTooLarge):
		return writeError(c, fiber.StatusUnprocessableEntity, "FILE_TOO_LARGE", "file exceeds the maximum allowed size")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler is the Fiber global error handler; it folds framework errors
// (unknown route, bad method) into the same envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body exceeds the maximum allowed size")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
