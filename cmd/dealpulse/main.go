package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"dealpulse/internal/api"
	"dealpulse/internal/config"
	"dealpulse/internal/http/handlers"
	applog "dealpulse/internal/log"
	"dealpulse/internal/repos"
	"dealpulse/internal/session"
	"dealpulse/web"
)

func main() {
	if err := run(); err != nil {
		applog.Logger().Fatal().Err(err).Msg("server stopped")
	}
}

// run returns instead of exiting so deferred closers flush storage and the log file.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Init(cfg.Environment, out)
	applog.Logger().Info().
		Str("port", cfg.Port).
		Str("api_base", cfg.APIBase).
		Str("storage", cfg.Storage).
		Str("env", string(cfg.Environment)).
		Msg("config")

	storage, closeStorage, err := openStorage(cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStorage()

	client, err := api.NewClient(&http.Client{Timeout: cfg.APITimeout}, cfg.APIBase)
	if err != nil {
		return fmt.Errorf("api client: %w", err)
	}

	engine := html.NewFileSystem(web.Templates(), ".html")
	engine.Reload(!cfg.Environment.IsProduction())

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static(), MaxAge: 3600}))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("rate limit exceeded, retry soon")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.Environment.IsProduction(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(client, storage)
	deps.Register(app, handlers.AuthLimit(5, 10*time.Minute))

	return app.Listen(":" + cfg.Port)
}

func openStorage(cfg config.Config) (handlers.StorageProvider, func(), error) {
	if cfg.Storage == config.StorageRedis {
		rdb, err := repos.OpenRedis(context.Background(), repos.RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		repo := repos.NewRedisStorageRepo(rdb)
		return func(sid string) session.Storage { return repo.For(sid) }, func() { _ = rdb.Close() }, nil
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	repo := repos.NewStorageRepo(db)
	return func(sid string) session.Storage { return repo.For(sid) }, func() { _ = db.Close() }, nil
}
