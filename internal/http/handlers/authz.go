package handlers

import (
	"strings"

	applog "atelier/internal/log"
	"atelier/internal/services"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authenticate verifies the bearer token and stores the caller's id and role
// in Locals for handlers and the logger. Returns false after writing the 401.
func authenticate(c *fiber.Ctx, auth *services.AuthService) (bool, error) {
	tok := bearerToken(c)
	if tok == "" {
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
	}
	sess, err := auth.Verify(tok)
	if err != nil {
		applog.Security(c, "auth.token.reject", nil)
		return false, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
	}
	c.Locals("uid", sess.UserID)
	c.Locals("role", sess.Role)
	return true, nil
}

// RequireAuth admits only requests carrying a valid access token.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := authenticate(c, auth)
		if !ok {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin additionally demands the ADMIN role.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := authenticate(c, auth)
		if !ok {
			return err
		}
		if role, _ := c.Locals("role").(string); role != "ADMIN" {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}
