package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/contact_relay/pkg/reqctx"
)

const LivenessText = "Contact relay is running."

// GET /
func Root(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString(LivenessText)
}

// ErrorHandler turns anything that escaped a handler into the JSON envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fail(c, fe.Code, fe.Message)
	}
	slog.Error("unhandled request error", append(reqctx.LogAttrs(c.Context()), "error", err)...)
	return internalError(c, MsgInternal)
}
