package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealpulse/internal/router"
	"dealpulse/internal/views"
)

type PageHandler struct {
	*visitors
}

// pageShell keeps the latest nav and view the router drew.
type pageShell struct {
	nav  views.Nav
	page views.Page
}

func (s *pageShell) ShowNav(n views.Nav)   { s.nav = n }
func (s *pageShell) ShowView(p views.Page) { s.page = p }

// Show serves every navigable path; the path plays the role of the fragment.
func (h *PageHandler) Show(c *fiber.Ctx) error {
	store := h.store(c)
	shell := &pageShell{}
	rt := router.New(shell, store, h.views(store))
	defer rt.Stop()

	t := rt.Navigate(c.UserContext(), c.Path())
	if t.Redirected() {
		return c.Redirect(string(t.Route), fiber.StatusSeeOther)
	}
	status := fiber.StatusOK
	if shell.page.State == views.StateFailed {
		status = fiber.StatusBadGateway
	}
	return render(c, status, shell.nav, shell.page)
}
