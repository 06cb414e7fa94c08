package handlers

import (
	"github.com/gofiber/fiber/v2"

	"dealpulse/internal/domain"
	"dealpulse/internal/log"
	"dealpulse/internal/validate"
	"dealpulse/internal/views"
)

type ProductHandler struct {
	*visitors
}

// Add posts the draft exactly as typed; the API owns validation.
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	draft := domain.ProductDraft{
		Title:         c.FormValue("title"),
		Merchant:      c.FormValue("merchant"),
		Image:         c.FormValue("image"),
		OriginalPrice: c.FormValue("originalPrice"),
		CurrentPrice:  c.FormValue("currentPrice"),
		URL:           c.FormValue("url"),
		AffiliateURL:  c.FormValue("affiliateUrl"),
	}
	add := &views.AddProduct{Products: h.api, Sessions: h.store(c)}

	o := add.Submit(c.UserContext(), draft)
	if o.Failed() {
		log.Error(c, "product.add.fail", nil, map[string]any{"title": draft.Title})
		return h.renderForm(c, fiber.StatusBadGateway, add.Page(draft, o.Alert))
	}
	log.Audit(c, "product.add", map[string]any{"title": draft.Title})
	return follow(c, o)
}

func (h *ProductHandler) Checkout(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return follow(c, views.Outcome{Alert: views.CheckoutFailed, Navigate: "/"})
	}
	d := &views.Discover{Catalog: h.api}
	o := d.Checkout(c.UserContext(), id)
	if o.Failed() {
		log.Error(c, "checkout.fail", nil, map[string]any{"product": id})
	} else {
		log.Audit(c, "checkout.start", map[string]any{"product": id})
	}
	return follow(c, o)
}
