package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealpulse/internal/domain"
	"dealpulse/internal/log"
	"dealpulse/internal/views"
)

type AuthHandler struct {
	*visitors
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return h.submit(c, views.NewLogin(h.api, h.store(c)))
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	return h.submit(c, views.NewSignup(h.api, h.store(c)))
}

func (h *AuthHandler) submit(c *fiber.Ctx, form *views.Auth) error {
	creds := domain.Credentials{Email: c.FormValue("email"), Password: c.FormValue("password")}
	action := "auth." + string(form.Kind())

	o := form.Submit(c.UserContext(), creds)
	if o.Failed() {
		log.Security(c, action+".fail", map[string]any{"email": creds.Email})
		return h.renderForm(c, fiber.StatusUnauthorized, form.Page(creds.Email, o.Alert))
	}
	log.Audit(c, action+".success", map[string]any{"email": creds.Email})
	return follow(c, o)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	o := views.Logout(c.UserContext(), h.store(c))
	log.Audit(c, "auth.logout", map[string]any{"sid": c.Cookies(sidCookie)})
	return follow(c, o)
}
