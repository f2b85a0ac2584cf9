package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"support-rag-be/internal/entity"
	"support-rag-be/pkg/embedding"
)

// ErrorHandlerMiddleware translates typed domain errors into HTTP statuses
// so controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(FailResponse(fiberErr.Message))
		}

		var dimErr *entity.DimensionMismatchError
		switch {
		case errors.Is(err, entity.ErrMissingTenantFilter):
			return ctx.Status(fiber.StatusBadRequest).JSON(FailResponse(err.Error()))
		case errors.As(err, &dimErr):
			return ctx.Status(fiber.StatusConflict).JSON(FailResponse(err.Error()))
		case errors.Is(err, embedding.ErrProviderUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(FailResponse(err.Error()))
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(FailResponse("record not found"))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(FailResponse(err.Error()))
	}
}
