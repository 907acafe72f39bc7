package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"staynest/internal/config"
	"staynest/internal/http/handlers"
	applog "staynest/internal/log"
)

// New builds the fiber app with every middleware and route mounted.
func New(cfg config.Config, db *sqlx.DB) *fiber.App {
	bodyLimit := cfg.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1 << 20 // 1 MiB
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("start", time.Now())
		return c.Next()
	})
	app.Use(logger.New())
	app.Use(helmet.New())

	rateMax := cfg.RateLimitMax
	if rateMax <= 0 {
		rateMax = 60
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rateMax,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many requests, retry soon"})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", applog.Fields{"header": c.Get("X-Csrf-Token") != ""})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Security check failed. Please refresh and try again."})
		},
	}))

	deps := handlers.NewDeps(db, cfg)
	app.Use(handlers.AttachUser(deps.Auth))

	requireUser := handlers.RequireUser(deps.Auth)
	requireGuest := handlers.RequireGuest()

	api := app.Group("/api")

	// Auth routes (login throttled)
	loginMax := cfg.LoginRateMax
	if loginMax <= 0 {
		loginMax = 5
	}
	authG := api.Group("/auth")
	authG.Post("/signup", deps.AuthHandler.Signup)
	authG.Post("/login", limiter.New(limiter.Config{
		Max:        loginMax,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	authG.Post("/logout", deps.AuthHandler.Logout)

	// User
	userG := api.Group("/user", requireUser)
	userG.Get("/currentuser", deps.UserHandler.Current)
	userG.Post("/addfavorite/:listingId", deps.UserHandler.AddFavorite)
	userG.Post("/removefavorite/:listingId", deps.UserHandler.RemoveFavorite)
	userG.Get("/favorites", deps.UserHandler.ListFavorites)

	// Listings
	listingG := api.Group("/listing")
	listingG.Get("/get", deps.ListingHandler.List)
	listingG.Get("/findlistingbyid/:id", deps.ListingHandler.Get)
	listingG.Post("/add", requireUser, deps.ListingHandler.Add)
	listingG.Delete("/delete/:id", requireUser, deps.ListingHandler.Delete)
	listingG.Put("/update/:id/quantity", requireUser, deps.ListingHandler.Resize)

	availLimiter := limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/v1/availability", availLimiter, deps.InventoryHandler.Check)

	// Bookings
	bookingG := api.Group("/booking", requireUser)
	bookingG.Post("/create/:id", requireGuest, deps.BookingHandler.Create)
	bookingG.Delete("/cancel/:id", requireGuest, deps.BookingHandler.Cancel)
	bookingG.Get("/mine", deps.BookingHandler.Mine)

	// Admin
	admin := api.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/users", deps.AdminHandler.ListUsers)
	admin.Get("/bookings", deps.AdminHandler.ListBookings)
	admin.Delete("/user/:id", deps.AdminHandler.DeleteUser)
	admin.Delete("/booking/:id", deps.AdminHandler.CancelBooking)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(handlers.NotFound)

	return app
}
