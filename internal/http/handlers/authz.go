package handlers

import (
	"github.com/gofiber/fiber/v2"

	"staynest/internal/auth"
	"staynest/internal/domain"
	applog "staynest/internal/log"
	"staynest/internal/services"
)

const userKey = "user"

func setUser(c *fiber.Ctx, u *domain.User) {
	c.Locals(userKey, u)
	c.Locals(applog.UserIDKey, u.ID)
	c.Locals(applog.RoleKey, u.Role)
}

// CurrentUser returns the caller attached by one of the auth middlewares.
func CurrentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(userKey).(*domain.User)
	return u
}

// AttachUser resolves the token cookie when present so that logs carry the
// caller's id. It never rejects a request.
func AttachUser(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok := c.Cookies(auth.CookieName); tok != "" {
			if u, err := svc.Authenticate(c.UserContext(), tok); err == nil {
				setUser(c, u)
			}
		}
		return c.Next()
	}
}

// RequireUser enforces a valid session token; otherwise 401.
func RequireUser(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.Next()
		}
		u, err := svc.Authenticate(c.UserContext(), c.Cookies(auth.CookieName))
		if err != nil {
			return fail(c, "auth.required", err)
		}
		setUser(c, u)
		return c.Next()
	}
}

// RequireAdmin enforces an ADMIN caller: 401 without a session, 403 for
// everyone else.
func RequireAdmin(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			var err error
			u, err = svc.Authenticate(c.UserContext(), c.Cookies(auth.CookieName))
			if err != nil {
				return fail(c, "auth.required", err)
			}
			setUser(c, u)
		}
		if !u.IsAdmin() {
			c.Status(fiber.StatusForbidden)
			applog.Security(c, "access.denied.admin", nil)
			return c.JSON(fiber.Map{"message": domain.Message(domain.ErrAdminOnly)})
		}
		return c.Next()
	}
}

// RequireGuest rejects admins from guest-only actions. Mount after RequireUser.
func RequireGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u.IsAdmin() {
			return fail(c, "access.denied.guest", domain.ErrGuestOnly)
		}
		return c.Next()
	}
}
