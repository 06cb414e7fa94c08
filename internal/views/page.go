// Package views describes the DealPulse screens as plain data. Nothing here
// knows about HTML; a shell decides how a Page is drawn.
package views

import (
	"context"

	"dealpulse/internal/domain"
	"dealpulse/internal/session"
)

type Kind string

const (
	KindDiscover Kind = "discover"
	KindLogin    Kind = "login"
	KindSignup   Kind = "signup"
	KindAdd      Kind = "add"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateFailed  State = "failed"
)

type Page struct {
	Kind    Kind
	Title   string
	State   State
	Message string
	Cards   []Card
	Form    *Form
	Alert   string
}

// Card is one deal on the discover page.
type Card struct {
	ProductID  string
	Title      string
	Merchant   string
	Image      string
	Price      string
	PercentOff int
	ViewHref   string
}

func (c Card) HasBadge() bool { return c.PercentOff > 0 }

type Form struct {
	Action string
	Submit string
	Fields []Field
}

type Field struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
}

// Value returns the submitted value of the named field.
func (f *Form) Value(name string) string {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl.Value
		}
	}
	return ""
}

type Link struct {
	Label string
	Href  string
}

type Nav struct {
	Links    []Link
	LoggedIn bool
	Email    string
}

// BuildNav reflects the current session.
func BuildNav(r session.Result) Nav {
	sess, ok := r.User()
	if !ok {
		return Nav{Links: []Link{
			{Label: "Discover", Href: "/"},
			{Label: "Log in", Href: "/login"},
			{Label: "Sign up", Href: "/signup"},
		}}
	}
	return Nav{
		Links: []Link{
			{Label: "Discover", Href: "/"},
			{Label: "Add product", Href: "/add"},
		},
		LoggedIn: true,
		Email:    sess.Email,
	}
}

// Surface receives pages as a view produces them. A later Show replaces the earlier one.
type Surface interface {
	Show(Page)
}

type View interface {
	Render(ctx context.Context, s Surface)
}

// Outcome tells the shell what to do after an action.
type Outcome struct {
	Alert    string
	Notice   string
	Navigate string
	Redirect string
}

func (o Outcome) Failed() bool { return o.Alert != "" }

type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateCheckoutSession(ctx context.Context, productID string) (string, error)
}

type Accounts interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Signup(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

type ProductSubmitter interface {
	CreateProduct(ctx context.Context, token string, draft domain.ProductDraft) error
}

type SessionStore interface {
	GetUser(ctx context.Context) session.Result
	SetUser(ctx context.Context, sess domain.Session) error
	ClearUser(ctx context.Context) error
}
