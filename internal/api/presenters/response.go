package presenters

import (
	"errors"

	"tmm-backend/domain"

	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorPayload struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Kind    string `json:"kind"`
		Field   string `json:"field,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	payload := ErrorPayload{
		Status:  false,
		Message: message,
		Kind:    domain.ErrorKind(err),
	}
	switch {
	case err == nil:
	case payload.Kind == domain.KindPersistence:
		// storage internals stay in the log
		payload.Error = domain.ErrPersistence.Error()
	case payload.Kind == domain.KindBlobWrite:
		payload.Error = domain.ErrBlobWrite.Error()
	default:
		payload.Error = err.Error()
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		payload.Field = ve.Field
	}
	return c.Status(code).JSON(payload)
}

// StatusFor picks the HTTP status that matches err's kind.
func StatusFor(err error) int {
	switch domain.ErrorKind(err) {
	case domain.KindValidation, domain.KindEmptyCart:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidTransition:
		return fiber.StatusConflict
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// Fail writes err with the status derived from its kind.
func Fail(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}
