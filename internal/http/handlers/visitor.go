package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealpulse/internal/session"
	"dealpulse/internal/views"
)

const (
	sidCookie   = "sid"
	flashCookie = "flash"
)

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind TLS
			Expires:  time.Now().AddDate(1, 0, 0),
		})
	}
	return sid
}

// store returns the visitor's session store, cached on the request.
func (v *visitors) store(c *fiber.Ctx) *session.Store {
	if s, ok := c.Locals("store").(*session.Store); ok {
		return s
	}
	s := session.NewStore(v.storage(ensureSID(c)))
	c.Locals("store", s)
	return s
}

type flash struct {
	Notice string
	Alert  string
}

func setFlash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    kind + "|" + url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// takeFlash reads and clears the one-shot message left by the previous action.
func takeFlash(c *fiber.Ctx) flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return flash{}
	}
	c.ClearCookie(flashCookie)
	kind, msg, ok := strings.Cut(raw, "|")
	if !ok {
		return flash{}
	}
	msg, err := url.QueryUnescape(msg)
	if err != nil {
		return flash{}
	}
	if kind == "alert" {
		return flash{Alert: msg}
	}
	return flash{Notice: msg}
}

// follow turns a navigation or external redirect into a response.
func follow(c *fiber.Ctx, o views.Outcome) error {
	if o.Redirect != "" {
		return c.Redirect(o.Redirect, fiber.StatusSeeOther)
	}
	if o.Notice != "" {
		setFlash(c, "notice", o.Notice)
	}
	if o.Alert != "" {
		setFlash(c, "alert", o.Alert)
	}
	target := o.Navigate
	if target == "" {
		target = "/"
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}
