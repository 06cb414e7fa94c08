package views

import (
	"context"
	"strings"

	"dealpulse/internal/domain"
	applog "dealpulse/internal/log"
	"dealpulse/internal/validate"
)

const (
	PlaceholderImage = "/static/placeholder.svg"

	msgLoading      = "Loading deals..."
	msgEmpty        = "No deals yet. Check back soon."
	msgFailed       = "Failed to load deals. Please try again later."
	msgCheckoutFail = "Could not start checkout. Please try again."
)

// CheckoutFailed is the alert shown when a checkout cannot be started.
const CheckoutFailed = msgCheckoutFail

type Discover struct {
	Catalog Catalog
}

func (d *Discover) Render(ctx context.Context, s Surface) {
	page := Page{Kind: KindDiscover, Title: "Discover deals", State: StateLoading, Message: msgLoading}
	s.Show(page)

	products, err := d.Catalog.ListProducts(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		applog.Warn().Err(err).Msg("discover.load")
		page.State, page.Message = StateFailed, msgFailed
		s.Show(page)
		return
	}
	if len(products) == 0 {
		page.State, page.Message = StateEmpty, msgEmpty
		s.Show(page)
		return
	}

	page.State, page.Message = StateReady, ""
	page.Cards = make([]Card, 0, len(products))
	for _, p := range products {
		page.Cards = append(page.Cards, CardFor(p))
	}
	s.Show(page)
}

func CardFor(p domain.Product) Card {
	c := Card{
		ProductID:  p.ID,
		Title:      p.Title,
		Merchant:   p.Merchant,
		Image:      p.Image,
		Price:      domain.FormatPrice(p.CurrentPrice),
		PercentOff: domain.PercentOff(p.OriginalPrice, p.CurrentPrice),
		ViewHref:   "#",
	}
	if strings.TrimSpace(c.Title) == "" {
		c.Title = "Untitled"
	}
	if strings.TrimSpace(c.Image) == "" {
		c.Image = PlaceholderImage
	}
	switch {
	case p.AffiliateURL != "":
		c.ViewHref = p.AffiliateURL
	case p.URL != "":
		c.ViewHref = p.URL
	}
	return c
}

// Checkout asks the API for a payment session and hands back its URL.
func (d *Discover) Checkout(ctx context.Context, productID string) Outcome {
	raw, err := d.Catalog.CreateCheckoutSession(ctx, productID)
	if err != nil {
		applog.Warn().Err(err).Str("product", productID).Msg("checkout.create")
		return Outcome{Alert: msgCheckoutFail}
	}
	u, ok := validate.HTTPURL(raw)
	if !ok {
		applog.Warn().Str("product", productID).Str("url", raw).Msg("checkout.bad_url")
		return Outcome{Alert: msgCheckoutFail}
	}
	return Outcome{Redirect: u}
}
