package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/contact_relay/internal/service/contact"
)

type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func mapContactError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, contact.ErrMissingFields):
		return badRequest(c, "All fields are required.")
	case errors.Is(err, contact.ErrInvalidEmail):
		return badRequest(c, "Invalid email format.")
	case errors.Is(err, contact.ErrMessageTooLong):
		return badRequest(c, "Message is too long (max 2000 characters).")
	case errors.Is(err, contact.ErrUndeliverable):
		return badRequest(c, "Email address appears to be invalid or cannot receive mail.")
	case errors.Is(err, contact.ErrLowScore):
		return badRequest(c, "Email address failed verification. Please use a different email.")
	case errors.Is(err, contact.ErrNotConfigured):
		return internalError(c, "Server configuration error.")
	case errors.Is(err, contact.ErrVerificationUnavailable):
		return internalError(c, "Email verification service unavailable. Please try again later.")
	case errors.Is(err, contact.ErrVerificationFailed):
		return internalError(c, "Email verification failed. Please try again later.")
	case errors.Is(err, contact.ErrDispatchFailed):
		return internalError(c, "Failed to send message. Please try again later.")
	default:
		return internalError(c, MsgInternal)
	}
}

// POST /api/contact
func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req submitContactRequest
	// An empty body is an empty submission, reported as missing fields.
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, MsgInvalidBody)
		}
	}

	err := h.svc.Submit(c.Context(), contact.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return mapContactError(c, err)
	}
	return ok(c, MsgSent)
}
