package handler

import "github.com/gofiber/fiber/v3"

// Envelope is the body of every JSON response the relay sends.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	MsgSent            = "Message sent successfully!"
	MsgTooManyRequests = "Too many requests, please try again later."
	MsgInvalidBody     = "Invalid request body."
	MsgInternal        = "Internal server error."
)

func ok(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: msg})
}

func fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusBadRequest, msg)
}

func internalError(c fiber.Ctx, msg string) error {
	return fail(c, fiber.StatusInternalServerError, msg)
}

// TooManyRequests is the limiter's rejection response.
func TooManyRequests(c fiber.Ctx) error {
	return fail(c, fiber.StatusTooManyRequests, MsgTooManyRequests)
}
