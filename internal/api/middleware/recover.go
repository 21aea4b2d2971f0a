package middleware

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Path()),
					slog.String("method", c.Method()),
				)

				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
					Error: fmt.Sprint(r),
				})
			}
		}()
		return c.Next()
	}
}
