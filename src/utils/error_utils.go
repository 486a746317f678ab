// error_utils.go
package utils

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/lib/sl"
	"sgformer-backend/src/models"
)

const MsgInternal = "Internal server error"

// HandleError writes err as an ErrorResponse with the status of its kind.
// Errors without a kind are logged and hidden behind a generic 500.
func HandleError(c *fiber.Ctx, err error) error {
	status := apperror.Status(err)
	body := models.ErrorResponse{Message: MsgInternal}

	var appErr *apperror.Error
	if errors.As(err, &appErr) && status < fiber.StatusInternalServerError {
		body.Message = appErr.Message
		body.Errors = appErr.Details
	} else {
		slog.Error("request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			sl.Err(err),
		)
	}
	return c.Status(status).JSON(body)
}

// Fail writes a plain error body without going through an error value.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Message: message})
}
