package serverutils

import (
	"errors"

	"exam-proctor-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors to HTTP responses so
// controllers can just `return err`.
//
// ValidationError        -> 422
// ErrSessionNotFound     -> 404
// SessionTerminalError   -> 400 (frozen score attached)
// fiber.Error            -> its own code
// anything else          -> 500, message hidden from the client
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ve *apperror.ValidationError
		if errors.As(err, &ve) {
			return ctx.Status(fiber.StatusUnprocessableEntity).
				JSON(ErrorResponse("Validation failed", ve.Fields))
		}

		if errors.Is(err, apperror.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusNotFound).
				JSON(ErrorResponse("Session not found", nil))
		}

		var te *apperror.SessionTerminalError
		if errors.As(err, &te) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":         false,
				"message":         "Session already ended",
				"integrity_score": te.IntegrityScore,
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Message, nil))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("Internal server error", nil))
	}
}
