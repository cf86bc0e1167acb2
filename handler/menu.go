package handler

import (
	"bipang_apung/menu"
	"bipang_apung/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMenu returns the storefront catalog.
func (h *Handler) GetMenu(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, menu.Items())
}
