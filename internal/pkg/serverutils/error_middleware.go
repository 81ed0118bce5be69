package serverutils

import (
	"errors"

	"focusforge-be/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed domain errors into HTTP responses.
// Controllers just return errors; the mapping to status codes lives here.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return ctx.Status(statusForKind(appErr.Kind)).JSON(ErrorBody{
				Success:   false,
				Message:   appErr.Message,
				ErrorKind: string(appErr.Kind),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				Success: false,
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorBody{
			Success: false,
			Message: "internal server error",
		})
	}
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindSessionNotFound:
		return fiber.StatusNotFound
	case apperrors.KindDuplicateSession:
		return fiber.StatusConflict
	case apperrors.KindClassification, apperrors.KindGeneration:
		return fiber.StatusBadGateway
	case apperrors.KindPersistence:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
