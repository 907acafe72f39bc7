package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"staynest/internal/auth"
	"staynest/internal/log"
	"staynest/internal/services"
	"staynest/internal/validate"
)

type AuthHandler struct {
	Auth         *services.AuthService
	TokenTTL     time.Duration
	CookieSecure bool
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=40"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) setToken(c *fiber.Ctx, tok string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    tok,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return badRequest(c, "signup", err.Error())
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name", "invalid name")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "password", "password must be 8-64 characters with upper, lower, digit and symbol")
	}

	u, tok, err := h.Auth.Signup(c.UserContext(), name, req.Email, req.Password)
	if err != nil {
		return fail(c, "auth.signup.fail", err)
	}
	h.setToken(c, tok, time.Now().Add(h.TokenTTL))
	c.Locals(log.UserIDKey, u.ID)
	c.Locals(log.RoleKey, u.Role)
	log.Audit(c, "auth.signup", log.Fields{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created", "user": u})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body", "invalid request body")
	}
	email := strings.TrimSpace(req.Email)
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", log.Fields{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}
	if !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", log.Fields{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	}

	u, tok, err := h.Auth.Login(c.UserContext(), email, req.Password)
	if err != nil {
		return fail(c, "auth.login.fail", err)
	}
	h.setToken(c, tok, time.Now().Add(h.TokenTTL))
	c.Locals(log.UserIDKey, u.ID)
	c.Locals(log.RoleKey, u.Role)
	log.Audit(c, "auth.login.success", log.Fields{"email": email})
	return c.JSON(fiber.Map{"message": "Login successful", "user": u})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.setToken(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
