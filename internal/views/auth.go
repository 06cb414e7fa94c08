package views

import (
	"context"

	"dealpulse/internal/domain"
	applog "dealpulse/internal/log"
)

// Auth is the login or signup screen; both post an email and password.
type Auth struct {
	kind     Kind
	Accounts Accounts
	Sessions SessionStore
}

func NewLogin(acc Accounts, store SessionStore) *Auth {
	return &Auth{kind: KindLogin, Accounts: acc, Sessions: store}
}

func NewSignup(acc Accounts, store SessionStore) *Auth {
	return &Auth{kind: KindSignup, Accounts: acc, Sessions: store}
}

func (a *Auth) Kind() Kind { return a.kind }

func (a *Auth) Render(_ context.Context, s Surface) {
	s.Show(a.Page("", ""))
}

// Page is the form, optionally prefilled with an email and carrying an alert.
func (a *Auth) Page(email, alert string) Page {
	title, submit := "Log in", "Log in"
	if a.kind == KindSignup {
		title, submit = "Sign up", "Create account"
	}
	return Page{
		Kind:  a.kind,
		Title: title,
		State: StateReady,
		Alert: alert,
		Form: &Form{
			Action: "/" + string(a.kind),
			Submit: submit,
			Fields: []Field{
				{Name: "email", Label: "Email", Type: "email", Placeholder: "you@example.com", Value: email},
				{Name: "password", Label: "Password", Type: "password"},
			},
		},
	}
}

func (a *Auth) failure() string {
	if a.kind == KindSignup {
		return "Signup failed"
	}
	return "Login failed"
}

// Submit authenticates against the API and persists the returned user.
func (a *Auth) Submit(ctx context.Context, creds domain.Credentials) Outcome {
	call := a.Accounts.Login
	if a.kind == KindSignup {
		call = a.Accounts.Signup
	}
	sess, err := call(ctx, creds)
	if err != nil {
		applog.Warn().Err(err).Str("view", string(a.kind)).Msg("auth.submit")
		return Outcome{Alert: a.failure()}
	}
	if err := a.Sessions.SetUser(ctx, sess); err != nil {
		applog.Warn().Err(err).Str("view", string(a.kind)).Msg("session.write")
		return Outcome{Alert: a.failure()}
	}
	return Outcome{Navigate: "/"}
}

// Logout drops the persisted user and returns to discover.
func Logout(ctx context.Context, store SessionStore) Outcome {
	if err := store.ClearUser(ctx); err != nil {
		applog.Warn().Err(err).Msg("session.clear")
	}
	return Outcome{Navigate: "/"}
}
