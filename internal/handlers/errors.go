package handlers

import (
	"errors"

	"taskhub/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorHandler is the fiber error handler. Application errors map to their status;
// anything unexpected is logged and answered with a bare 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errs.Error
		if errors.As(err, &appErr) {
			if appErr.Kind == errs.KindAuth {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			body := fiber.Map{"message": appErr.Message}
			if len(appErr.Fields) > 0 {
				body["errors"] = appErr.Fields
			}
			return c.Status(appErr.Status()).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error",
		})
	}
}
