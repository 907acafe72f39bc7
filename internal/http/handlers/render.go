package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"staynest/internal/domain"
	applog "staynest/internal/log"
)

const internalMessage = "Something went wrong. Please try again."

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// fail answers with the status for err's kind and a {"message"} body, and
// logs the failure under action. Internal errors never reach the body.
func fail(c *fiber.Ctx, action string, err error) error {
	status := statusOf(err)
	c.Status(status)

	msg := domain.Message(err)
	switch {
	case status >= fiber.StatusInternalServerError:
		applog.Error(c, action, err, nil)
		msg = internalMessage
	case status == fiber.StatusUnauthorized || status == fiber.StatusForbidden:
		applog.Security(c, action, applog.Fields{"reason": msg})
	default:
		applog.Info(c, action, applog.Fields{"reason": msg})
	}
	return c.JSON(fiber.Map{"message": msg})
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", applog.Fields{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msg})
}

// ErrorHandler is the app-wide fiber error handler. fiber errors keep their
// code; anything else is logged and answered with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"message": internalMessage})
}

// NotFound is the catch-all for unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Route not found"})
}
