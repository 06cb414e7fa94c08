// Package router maps a location fragment to a view and keeps only the newest
// navigation allowed to draw.
package router

import (
	"context"
	"strings"
	"sync"

	"dealpulse/internal/session"
	"dealpulse/internal/views"
)

type Route string

const (
	Discover   Route = "/"
	Login      Route = "/login"
	Signup     Route = "/signup"
	AddProduct Route = "/add"
)

// Resolve strips the leading marker and matches by prefix: login, signup, add, else discover.
func Resolve(fragment string) Route {
	h := strings.TrimPrefix(fragment, "#")
	if h == "" {
		h = "/"
	}
	switch {
	case strings.HasPrefix(h, string(Login)):
		return Login
	case strings.HasPrefix(h, string(Signup)):
		return Signup
	case strings.HasPrefix(h, string(AddProduct)):
		return AddProduct
	default:
		return Discover
	}
}

// Guard sends anonymous visitors of the add-product view to login.
func Guard(r Route, loggedIn bool) Route {
	if r == AddProduct && !loggedIn {
		return Login
	}
	return r
}

// Shell is where the router draws.
type Shell interface {
	ShowNav(views.Nav)
	ShowView(views.Page)
}

type Sessions interface {
	GetUser(ctx context.Context) session.Result
}

// Transition reports what a navigation asked for and what it rendered.
type Transition struct {
	Requested Route
	Route     Route
}

func (t Transition) Redirected() bool { return t.Requested != t.Route }

type Router struct {
	shell    Shell
	sessions Sessions
	views    map[Route]views.View

	mu     sync.Mutex
	epoch  uint64
	cancel context.CancelFunc
}

func New(shell Shell, sessions Sessions, vs map[Route]views.View) *Router {
	return &Router{shell: shell, sessions: sessions, views: vs}
}

// Navigate cancels any navigation still in flight, redraws the nav and then
// the matched view.
func (r *Router) Navigate(ctx context.Context, fragment string) Transition {
	ctx, epoch := r.begin(ctx)

	res := r.sessions.GetUser(ctx)
	t := Transition{Requested: Resolve(fragment)}
	t.Route = Guard(t.Requested, res.LoggedIn())

	if !r.commit(epoch, func() { r.shell.ShowNav(views.BuildNav(res)) }) {
		return t
	}
	if v, ok := r.views[t.Route]; ok {
		v.Render(ctx, &frame{r: r, epoch: epoch})
	}
	return t
}

// Stop cancels the current navigation.
func (r *Router) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.epoch++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Router) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	r.epoch++
	r.cancel = cancel
	return ctx, r.epoch
}

func (r *Router) commit(epoch uint64, draw func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if epoch != r.epoch {
		return false
	}
	draw()
	return true
}

// frame is the surface handed to one navigation's view.
type frame struct {
	r     *Router
	epoch uint64
}

func (f *frame) Show(p views.Page) {
	f.r.commit(f.epoch, func() { f.r.shell.ShowView(p) })
}
