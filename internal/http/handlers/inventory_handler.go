package handlers

import (
	"github.com/gofiber/fiber/v2"

	"staynest/internal/services"
	"staynest/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?listingId=
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.Query("listingId"))
	if !ok {
		return badRequest(c, "listingId", "missing or invalid listingId")
	}

	avail, err := h.Inv.CheckAvailability(c.UserContext(), listingID)
	if err != nil {
		return fail(c, "availability.fail", err)
	}
	return c.JSON(avail)
}
