package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "dealpulse/internal/log"
)

// RequireSession sends visitors without a valid session to the login view.
func (d *Deps) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !d.visitors.store(c).GetUser(c.UserContext()).LoggedIn() {
			applog.Security(c, "access.denied.add", nil)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
