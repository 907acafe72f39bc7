package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "staynest/internal/log"
	"staynest/internal/services"
	"staynest/internal/validate"
)

type BookingHandler struct {
	Bookings *services.BookingService
}

type createBookingRequest struct {
	CheckIn   string  `json:"checkIn" validate:"required"`
	CheckOut  string  `json:"checkOut" validate:"required"`
	TotalRent float64 `json:"totalRent"`
}

// POST /api/booking/create/:id
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid listing id")
	}
	applog.Listing(c, listingID)
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "booking", err.Error())
	}

	u := CurrentUser(c)
	v, err := h.Bookings.Create(c.UserContext(), services.CreateBookingInput{
		ListingID:   listingID,
		RequesterID: u.ID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		TotalRent:   req.TotalRent,
	})
	if err != nil {
		return fail(c, "booking.create.fail", err)
	}
	c.Status(fiber.StatusCreated)
	applog.Booking(c, v.ID)
	applog.Audit(c, "booking.create", applog.Fields{"check_in": v.CheckIn, "check_out": v.CheckOut})
	return c.JSON(v)
}

// DELETE /api/booking/cancel/:id?bookingId=
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid listing id")
	}
	bookingID := c.Query("bookingId")
	if bookingID != "" {
		if bookingID, ok = validate.ID(bookingID); !ok {
			return badRequest(c, "bookingId", "invalid booking id")
		}
		applog.Booking(c, bookingID)
	}
	applog.Listing(c, listingID)

	u := CurrentUser(c)
	b, err := h.Bookings.Cancel(c.UserContext(), services.CancelBookingInput{
		ListingID:  listingID,
		CallerID:   u.ID,
		CallerRole: u.Role,
		BookingID:  bookingID,
	})
	if err != nil {
		return fail(c, "booking.cancel.fail", err)
	}
	applog.Booking(c, b.ID)
	applog.Audit(c, "booking.cancel", applog.Fields{"guest_id": b.GuestID})
	return c.JSON(fiber.Map{"message": "booking cancelled", "booking": b})
}

// GET /api/booking/mine
func (h *BookingHandler) Mine(c *fiber.Ctx) error {
	vs, err := h.Bookings.ListMine(c.UserContext(), CurrentUser(c).ID)
	if err != nil {
		return fail(c, "booking.mine.fail", err)
	}
	return c.JSON(fiber.Map{"bookings": vs})
}
