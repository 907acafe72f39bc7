package handlers

import (
	"staynest/internal/auth"
	"staynest/internal/config"
	"staynest/internal/repos"
	"staynest/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler      *AuthHandler
	ListingHandler   *ListingHandler
	InventoryHandler *InventoryHandler
	BookingHandler   *BookingHandler
	UserHandler      *UserHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	store := repos.NewStore(db)
	r := store.Repos()

	authSvc := services.NewAuthService(r.Users, auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL))
	listingSvc := services.NewListingService(store)
	invSvc := services.NewInventoryService(r.Inventory)
	bookingSvc := services.NewBookingService(store)
	userSvc := services.NewUserService(store)
	favSvc := services.NewFavoriteService(store)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc, TokenTTL: cfg.JWTTTL, CookieSecure: cfg.CookieSecure},
		ListingHandler:   &ListingHandler{Listings: listingSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		BookingHandler:   &BookingHandler{Bookings: bookingSvc},
		UserHandler:      &UserHandler{Users: userSvc, Favorites: favSvc},
		AdminHandler:     &AdminHandler{Users: userSvc, Bookings: bookingSvc},
	}
}
