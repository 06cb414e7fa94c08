package views_test

import (
	"context"
	"errors"
	"testing"

	"dealpulse/internal/domain"
	"dealpulse/internal/session"
	"dealpulse/internal/views"
)

type pages struct{ shown []views.Page }

func (p *pages) Show(pg views.Page) { p.shown = append(p.shown, pg) }
func (p *pages) last() views.Page   { return p.shown[len(p.shown)-1] }

type fakeCatalog struct {
	products    []domain.Product
	err         error
	checkoutURL string
	checkoutErr error
}

func (f *fakeCatalog) ListProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}
func (f *fakeCatalog) CreateCheckoutSession(context.Context, string) (string, error) {
	return f.checkoutURL, f.checkoutErr
}

type memStore struct {
	res      session.Result
	setErr   error
	cleared  bool
	setCalls int
}

func (m *memStore) GetUser(context.Context) session.Result { return m.res }
func (m *memStore) SetUser(_ context.Context, s domain.Session) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.res = session.Result{Status: session.Valid, Session: s}
	return nil
}
func (m *memStore) ClearUser(context.Context) error {
	m.cleared = true
	m.res = session.Result{Status: session.Absent}
	return nil
}

func TestDiscoverRendersCards(t *testing.T) {
	cat := &fakeCatalog{products: []domain.Product{
		{ID: "1", Title: "Shoe", Merchant: "Kicks", OriginalPrice: "100", CurrentPrice: "80", URL: "https://kicks.test/shoe"},
	}}
	out := &pages{}
	(&views.Discover{Catalog: cat}).Render(context.Background(), out)

	if len(out.shown) != 2 || out.shown[0].State != views.StateLoading {
		t.Fatalf("want loading then result, got %+v", out.shown)
	}
	p := out.last()
	if p.State != views.StateReady || len(p.Cards) != 1 {
		t.Fatalf("want one ready card, got %+v", p)
	}
	c := p.Cards[0]
	if c.Price != "$80.00" || c.PercentOff != 20 || !c.HasBadge() {
		t.Fatalf("unexpected card %+v", c)
	}
	if c.ViewHref != "https://kicks.test/shoe" {
		t.Fatalf("view link should fall back to url, got %q", c.ViewHref)
	}
}

func TestCardFallbacks(t *testing.T) {
	c := views.CardFor(domain.Product{OriginalPrice: "0", CurrentPrice: "oops"})
	if c.Title != "Untitled" || c.Image != views.PlaceholderImage {
		t.Fatalf("missing fallbacks: %+v", c)
	}
	if c.HasBadge() || c.Price != "$0.00" || c.ViewHref != "#" {
		t.Fatalf("unexpected card %+v", c)
	}

	c = views.CardFor(domain.Product{URL: "https://shop.test/p", AffiliateURL: "https://aff.test/p"})
	if c.ViewHref != "https://aff.test/p" {
		t.Fatalf("affiliate url should win, got %q", c.ViewHref)
	}
}

func TestDiscoverEmptyAndFailedAreDistinct(t *testing.T) {
	empty := &pages{}
	(&views.Discover{Catalog: &fakeCatalog{products: []domain.Product{}}}).Render(context.Background(), empty)
	failed := &pages{}
	(&views.Discover{Catalog: &fakeCatalog{err: errors.New("dial tcp: connection refused")}}).Render(context.Background(), failed)

	if empty.last().State != views.StateEmpty {
		t.Fatalf("want empty state, got %s", empty.last().State)
	}
	if failed.last().State != views.StateFailed {
		t.Fatalf("want failed state, got %s", failed.last().State)
	}
	if empty.last().Message == failed.last().Message {
		t.Fatal("empty and failed states must read differently")
	}
}

func TestCheckout(t *testing.T) {
	d := &views.Discover{Catalog: &fakeCatalog{checkoutURL: "https://pay.test/s/1"}}
	if o := d.Checkout(context.Background(), "1"); o.Redirect != "https://pay.test/s/1" || o.Failed() {
		t.Fatalf("unexpected outcome %+v", o)
	}

	for _, cat := range []*fakeCatalog{
		{checkoutErr: errors.New("boom")},
		{checkoutURL: "javascript:alert(1)"},
	} {
		o := (&views.Discover{Catalog: cat}).Checkout(context.Background(), "1")
		if !o.Failed() || o.Redirect != "" {
			t.Fatalf("want alert, got %+v", o)
		}
	}
}

type fakeAccounts struct {
	sess domain.Session
	err  error
	last string
}

func (f *fakeAccounts) Login(_ context.Context, _ domain.Credentials) (domain.Session, error) {
	f.last = "login"
	return f.sess, f.err
}
func (f *fakeAccounts) Signup(_ context.Context, _ domain.Credentials) (domain.Session, error) {
	f.last = "signup"
	return f.sess, f.err
}

func TestLoginSubmit(t *testing.T) {
	acc := &fakeAccounts{sess: domain.Session{Email: "ana@dealpulse.test", Token: "tok"}}
	store := &memStore{}
	o := views.NewLogin(acc, store).Submit(context.Background(), domain.Credentials{Email: "ana@dealpulse.test", Password: "pw"})
	if o.Failed() || o.Navigate != "/" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if !store.res.LoggedIn() || store.res.Session.Email != "ana@dealpulse.test" {
		t.Fatalf("session not persisted: %+v", store.res)
	}
	if nav := views.BuildNav(store.res); !nav.LoggedIn || nav.Email != "ana@dealpulse.test" {
		t.Fatalf("nav should show the user: %+v", nav)
	}
}

func TestAuthFailureLeavesSessionAlone(t *testing.T) {
	acc := &fakeAccounts{err: errors.New("401")}
	store := &memStore{}
	o := views.NewSignup(acc, store).Submit(context.Background(), domain.Credentials{})
	if o.Alert != "Signup failed" || o.Navigate != "" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if acc.last != "signup" || store.setCalls != 0 {
		t.Fatalf("signup should call the signup endpoint only and not persist (last=%s sets=%d)", acc.last, store.setCalls)
	}

	o = views.NewLogin(acc, store).Submit(context.Background(), domain.Credentials{})
	if o.Alert != "Login failed" {
		t.Fatalf("want login failed alert, got %+v", o)
	}
}

func TestLogout(t *testing.T) {
	store := &memStore{res: session.Result{Status: session.Valid, Session: domain.Session{Email: "a@b.test"}}}
	o := views.Logout(context.Background(), store)
	if !store.cleared || o.Navigate != "/" {
		t.Fatalf("logout should clear and go home: %+v", o)
	}
	nav := views.BuildNav(store.res)
	if nav.LoggedIn {
		t.Fatal("nav should revert to logged out")
	}
	found := false
	for _, l := range nav.Links {
		if l.Href == "/login" {
			found = true
		}
	}
	if !found {
		t.Fatal("logged-out nav should offer log in")
	}
}

type fakeSubmitter struct {
	token string
	draft domain.ProductDraft
	err   error
}

func (f *fakeSubmitter) CreateProduct(_ context.Context, token string, d domain.ProductDraft) error {
	f.token, f.draft = token, d
	return f.err
}

func TestAddProductSubmit(t *testing.T) {
	store := &memStore{res: session.Result{Status: session.Valid, Session: domain.Session{Email: "a@b.test", Token: "tok-7"}}}
	sub := &fakeSubmitter{}
	add := &views.AddProduct{Products: sub, Sessions: store}

	draft := domain.ProductDraft{Title: "Lamp", CurrentPrice: "30"}
	o := add.Submit(context.Background(), draft)
	if o.Failed() || o.Navigate != "/" || o.Notice == "" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if sub.token != "tok-7" || sub.draft != draft {
		t.Fatalf("draft or token not forwarded: %+v", sub)
	}

	sub.err = errors.New("500")
	if o := add.Submit(context.Background(), draft); o.Alert != "Failed to add product" {
		t.Fatalf("want failure alert, got %+v", o)
	}

	// the form keeps what was typed
	p := add.Page(draft, "Failed to add product")
	if p.Form.Value("title") != "Lamp" || p.Form.Value("currentPrice") != "30" || p.Alert == "" {
		t.Fatalf("form should keep values: %+v", p.Form)
	}
}

func TestAddProductSubmitWithoutSession(t *testing.T) {
	sub := &fakeSubmitter{}
	add := &views.AddProduct{Products: sub, Sessions: &memStore{}}
	o := add.Submit(context.Background(), domain.ProductDraft{Title: "x"})
	if o.Navigate != "/login" || sub.token != "" {
		t.Fatalf("anonymous submit should go to login without calling the API: %+v", o)
	}
}
