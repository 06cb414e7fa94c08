package views

import (
	"context"

	"dealpulse/internal/domain"
	applog "dealpulse/internal/log"
)

const (
	msgAdded     = "Product submitted. Deal status is computed by the server."
	msgAddFailed = "Failed to add product"
)

// AddProduct lets a logged-in user submit a draft. The router guards entry.
type AddProduct struct {
	Products ProductSubmitter
	Sessions SessionStore
}

func (a *AddProduct) Render(_ context.Context, s Surface) {
	s.Show(a.Page(domain.ProductDraft{}, ""))
}

func (a *AddProduct) Page(d domain.ProductDraft, alert string) Page {
	return Page{
		Kind:  KindAdd,
		Title: "Add a product",
		State: StateReady,
		Alert: alert,
		Form: &Form{
			Action: "/add",
			Submit: "Add product",
			Fields: []Field{
				{Name: "title", Label: "Title", Type: "text", Value: d.Title},
				{Name: "merchant", Label: "Merchant", Type: "text", Value: d.Merchant},
				{Name: "image", Label: "Image URL", Type: "text", Value: d.Image},
				{Name: "originalPrice", Label: "Original price", Type: "number", Value: d.OriginalPrice},
				{Name: "currentPrice", Label: "Current price", Type: "number", Value: d.CurrentPrice},
				{Name: "url", Label: "Product URL", Type: "text", Value: d.URL},
				{Name: "affiliateUrl", Label: "Affiliate URL", Type: "text", Value: d.AffiliateURL},
			},
		},
	}
}

func (a *AddProduct) Submit(ctx context.Context, d domain.ProductDraft) Outcome {
	sess, ok := a.Sessions.GetUser(ctx).User()
	if !ok {
		return Outcome{Navigate: "/login"}
	}
	if err := a.Products.CreateProduct(ctx, sess.Token, d); err != nil {
		applog.Warn().Err(err).Str("title", d.Title).Msg("product.create")
		return Outcome{Alert: msgAddFailed}
	}
	return Outcome{Notice: msgAdded, Navigate: "/"}
}
