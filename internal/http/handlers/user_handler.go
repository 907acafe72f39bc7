package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "staynest/internal/log"
	"staynest/internal/services"
	"staynest/internal/validate"
)

type UserHandler struct {
	Users     *services.UserService
	Favorites *services.FavoriteService
}

// GET /api/user/currentuser
func (h *UserHandler) Current(c *fiber.Ctx) error {
	p, err := h.Users.Current(c.UserContext(), CurrentUser(c).ID)
	if err != nil {
		return fail(c, "user.current.fail", err)
	}
	return c.JSON(fiber.Map{"user": p})
}

// POST /api/user/addfavorite/:listingId
func (h *UserHandler) AddFavorite(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.Params("listingId"))
	if !ok {
		return badRequest(c, "listingId", "invalid listing id")
	}
	applog.Listing(c, listingID)
	ids, err := h.Favorites.Add(c.UserContext(), CurrentUser(c).ID, listingID)
	if err != nil {
		return fail(c, "favorite.add.fail", err)
	}
	applog.Audit(c, "favorite.add", nil)
	return c.JSON(fiber.Map{"message": "Added to favorites", "favorites": ids})
}

// POST /api/user/removefavorite/:listingId
func (h *UserHandler) RemoveFavorite(c *fiber.Ctx) error {
	listingID, ok := validate.ID(c.Params("listingId"))
	if !ok {
		return badRequest(c, "listingId", "invalid listing id")
	}
	applog.Listing(c, listingID)
	ids, err := h.Favorites.Remove(c.UserContext(), CurrentUser(c).ID, listingID)
	if err != nil {
		return fail(c, "favorite.remove.fail", err)
	}
	applog.Audit(c, "favorite.remove", nil)
	return c.JSON(fiber.Map{"message": "Removed from favorites", "favorites": ids})
}

// GET /api/user/favorites
func (h *UserHandler) ListFavorites(c *fiber.Ctx) error {
	ls, err := h.Favorites.List(c.UserContext(), CurrentUser(c).ID)
	if err != nil {
		return fail(c, "favorite.list.fail", err)
	}
	return c.JSON(fiber.Map{"favorites": ls})
}
