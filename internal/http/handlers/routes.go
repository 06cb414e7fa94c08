package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "dealpulse/internal/log"
)

// AuthLimit throttles login and signup posts per client.
func AuthLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many attempts. Please try again later.")
		},
	})
}

// Register mounts the views and actions. Global middleware (csrf, limits,
// static files) is the caller's business.
func (d *Deps) Register(app fiber.Router, authLimit fiber.Handler) {
	if authLimit == nil {
		authLimit = func(c *fiber.Ctx) error { return c.Next() }
	}
	app.Post("/login", authLimit, d.AuthHandler.Login)
	app.Post("/signup", authLimit, d.AuthHandler.Signup)
	app.Post("/logout", d.AuthHandler.Logout)
	app.Post("/add", d.RequireSession(), d.ProductHandler.Add)
	app.Post("/checkout", d.ProductHandler.Checkout)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/", d.PageHandler.Show)
	app.Get("/*", d.PageHandler.Show)
}
