package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "staynest/internal/log"
	"staynest/internal/services"
	"staynest/internal/validate"
)

type AdminHandler struct {
	Users    *services.UserService
	Bookings *services.BookingService
}

// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return fail(c, "admin.users.list.fail", err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GET /api/admin/bookings?page=&pageSize=
// Without pageSize the whole ledger is returned.
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	size := c.QueryInt("pageSize", 0)
	if size > 500 {
		size = 500
	}
	p, err := h.Bookings.ListAll(c.UserContext(), page, size)
	if err != nil {
		return fail(c, "admin.bookings.list.fail", err)
	}
	return c.JSON(p)
}

// DELETE /api/admin/user/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid user id")
	}
	applog.Subject(c, id)
	if err := h.Users.Delete(c.UserContext(), CurrentUser(c).ID, id); err != nil {
		return fail(c, "admin.users.delete.fail", err)
	}
	applog.Audit(c, "admin.users.delete", nil)
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// DELETE /api/admin/booking/:id
func (h *AdminHandler) CancelBooking(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid booking id")
	}
	applog.Booking(c, id)
	u := CurrentUser(c)
	b, err := h.Bookings.CancelByID(c.UserContext(), u.ID, u.Role, id)
	if err != nil {
		return fail(c, "admin.bookings.cancel.fail", err)
	}
	applog.Listing(c, b.ListingID)
	applog.Audit(c, "admin.bookings.cancel", applog.Fields{"guest_id": b.GuestID})
	return c.JSON(fiber.Map{"message": "booking cancelled", "booking": b})
}
