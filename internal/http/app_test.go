package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"dealpulse/internal/api"
	"dealpulse/internal/http/handlers"
	"dealpulse/internal/repos"
	"dealpulse/internal/session"
	"dealpulse/web"
)

// backend is a scriptable stand-in for the DealPulse API.
type backend struct {
	mu sync.Mutex

	productsStatus int
	productsBody   string
	authStatus     int
	authBody       string
	createStatus   int
	checkoutBody   string

	lastAuthHeader string
	lastCheckout   map[string]any
	created        []map[string]any
}

func newBackend() *backend {
	return &backend{
		productsStatus: http.StatusOK,
		productsBody:   `[]`,
		authStatus:     http.StatusOK,
		authBody:       `{"user":{"email":"ana@dealpulse.test","token":"tok-ana"}}`,
		createStatus:   http.StatusCreated,
		checkoutBody:   `{"url":"https://pay.example/session/abc"}`,
	}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		w.WriteHeader(b.productsStatus)
		_, _ = io.WriteString(w, b.productsBody)
	case r.Method == http.MethodPost && r.URL.Path == "/products":
		b.lastAuthHeader = r.Header.Get("Authorization")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if b.createStatus < 300 {
			b.created = append(b.created, body)
		}
		w.WriteHeader(b.createStatus)
		_, _ = io.WriteString(w, `{}`)
	case r.Method == http.MethodPost && (r.URL.Path == "/login" || r.URL.Path == "/signup"):
		w.WriteHeader(b.authStatus)
		_, _ = io.WriteString(w, b.authBody)
	case r.Method == http.MethodPost && r.URL.Path == "/create-checkout-session":
		_ = json.NewDecoder(r.Body).Decode(&b.lastCheckout)
		_, _ = io.WriteString(w, b.checkoutBody)
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) set(fn func(b *backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

type harness struct {
	app     *fiber.App
	api     *backend
	apiURL  string
	storage *repos.StorageRepo
}

func newHarness(t *testing.T, authLimit fiber.Handler) *harness {
	t.Helper()
	be := newBackend()
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := repos.NewStorageRepo(db)

	engine := html.NewFileSystem(web.Templates(), ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(client, func(sid string) session.Storage { return repo.For(sid) })
	deps.Register(app, authLimit)
	return &harness{app: app, api: be, apiURL: srv.URL, storage: repo}
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	h       *harness
	cookies map[string]string
}

func (h *harness) browser(t *testing.T) *browser {
	return &browser{t: t, h: h, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) (*http.Response, string) {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.h.app.Test(req, -1)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	for _, c := range resp.Cookies() {
		if c.Value == "" || (!c.Expires.IsZero() && c.Expires.Before(time.Now())) {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits a form, fetching a csrf token first if the browser has none.
func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	if b.cookies["csrf_"] == "" {
		b.get("/login")
	}
	if b.cookies["csrf_"] == "" {
		b.t.Fatal("csrf token missing")
	}
	form.Set("csrf", b.cookies["csrf_"])
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) login() {
	b.t.Helper()
	resp, _ := b.post("/login", url.Values{"email": {"ana@dealpulse.test"}, "password": {"hunter22"}})
	if resp.StatusCode != http.StatusSeeOther {
		b.t.Fatalf("login: expected redirect, got %d", resp.StatusCode)
	}
}
