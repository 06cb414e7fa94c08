package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealpulse/internal/views"
)

const layout = "layouts/main"

func templateFor(k views.Kind) string {
	if k == views.KindDiscover {
		return "discover"
	}
	return "form"
}

func csrfToken(c *fiber.Ctx) string {
	if tok, ok := c.Locals("csrf").(string); ok && tok != "" {
		return tok
	}
	// Fallback when the middleware did not populate Locals.
	return c.Cookies("csrf_")
}

func render(c *fiber.Ctx, status int, nav views.Nav, page views.Page) error {
	f := takeFlash(c)
	alert := page.Alert
	if alert == "" {
		alert = f.Alert
	}
	return c.Status(status).Render(templateFor(page.Kind), fiber.Map{
		"Nav":       nav,
		"Page":      page,
		"Notice":    f.Notice,
		"Alert":     alert,
		"CSRFToken": csrfToken(c),
	}, layout)
}

// renderForm redraws a form page for the current visitor, typically with an alert.
func (v *visitors) renderForm(c *fiber.Ctx, status int, page views.Page) error {
	nav := views.BuildNav(v.store(c).GetUser(c.UserContext()))
	return render(c, status, nav, page)
}
