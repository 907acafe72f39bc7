package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "staynest/internal/log"
	"staynest/internal/services"
	"staynest/internal/validate"
)

type ListingHandler struct {
	Listings *services.ListingService
}

type createListingRequest struct {
	Title         string  `json:"title" validate:"required,max=120"`
	Description   string  `json:"description" validate:"max=2000"`
	Rent          float64 `json:"rent" validate:"gte=0"`
	City          string  `json:"city" validate:"required,max=80"`
	Landmark      string  `json:"landMark" validate:"max=120"`
	Category      string  `json:"category"`
	TotalQuantity int     `json:"totalQuantity" validate:"gte=1"`
}

type resizeRequest struct {
	TotalQuantity int `json:"totalQuantity" validate:"gte=1"`
}

// POST /api/listing/add
func (h *ListingHandler) Add(c *fiber.Ctx) error {
	var req createListingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "listing", err.Error())
	}
	category, ok := validate.Category(req.Category)
	if !ok {
		return badRequest(c, "category", "invalid category")
	}

	u := CurrentUser(c)
	l, err := h.Listings.Create(c.UserContext(), services.CreateListingInput{
		HostID:        u.ID,
		Title:         req.Title,
		Description:   req.Description,
		Rent:          req.Rent,
		City:          req.City,
		Landmark:      req.Landmark,
		Category:      category,
		TotalQuantity: req.TotalQuantity,
	})
	if err != nil {
		return fail(c, "listing.create.fail", err)
	}
	applog.Listing(c, l.ID)
	applog.Audit(c, "listing.create", applog.Fields{"total": l.TotalQuantity})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Listing created", "listing": l})
}

// GET /api/listing/get?category=&page=&pageSize=
func (h *ListingHandler) List(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		return badRequest(c, "category", "invalid category")
	}
	page := c.QueryInt("page", 1)
	size := c.QueryInt("pageSize", 12)
	if size > 100 {
		size = 100
	}

	ls, err := h.Listings.List(c.UserContext(), category, page, size)
	if err != nil {
		return fail(c, "listing.list.fail", err)
	}
	return c.JSON(fiber.Map{"listings": ls, "page": page})
}

// GET /api/listing/findlistingbyid/:id
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid listing id")
	}
	l, err := h.Listings.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "listing.get.fail", err)
	}
	return c.JSON(fiber.Map{"listing": l})
}

// DELETE /api/listing/delete/:id
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid listing id")
	}
	applog.Listing(c, id)
	u := CurrentUser(c)
	if err := h.Listings.Delete(c.UserContext(), u.ID, u.Role, id); err != nil {
		return fail(c, "listing.delete.fail", err)
	}
	applog.Audit(c, "listing.delete", nil)
	return c.JSON(fiber.Map{"message": "Listing deleted"})
}

// PUT /api/listing/update/:id/quantity
func (h *ListingHandler) Resize(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid listing id")
	}
	var req resizeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "totalQuantity", err.Error())
	}

	applog.Listing(c, id)
	u := CurrentUser(c)
	l, err := h.Listings.Resize(c.UserContext(), u.ID, u.Role, id, req.TotalQuantity)
	if err != nil {
		return fail(c, "listing.resize.fail", err)
	}
	applog.Audit(c, "listing.resize", applog.Fields{"total": l.TotalQuantity})
	return c.JSON(fiber.Map{"message": "Listing updated", "listing": l})
}
