package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/admin/login", h.Login)
	app.Post("/api/v1/admin/logout", h.Logout)
}
