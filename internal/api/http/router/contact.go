package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/contact_relay/internal/api/http/handler"
)

func (r *Router) registerContactRoutes(api fiber.Router, h *handler.ContactHandler, limit fiber.Handler) {
	if limit != nil {
		api.Post("/contact", limit, h.Submit)
		return
	}
	api.Post("/contact", h.Submit)
}
