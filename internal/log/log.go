package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"dealpulse/internal/config"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	current.Store(&l)
}

// Init picks the sink for env: a console writer with callers in development,
// JSON lines everywhere else. Production drops debug output.
func Init(env config.Environment, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	var l zerolog.Logger
	switch {
	case env == config.Development:
		l = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
	case env.IsProduction():
		l = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	default:
		l = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	current.Store(&l)
}

// SetOutput swaps in a plain JSON logger writing to w.
func SetOutput(w io.Writer) {
	l := zerolog.New(w).With().Timestamp().Logger()
	current.Store(&l)
}

func SetLogger(l zerolog.Logger) { current.Store(&l) }

func Logger() *zerolog.Logger { return current.Load() }

func Debug() *zerolog.Event { return current.Load().Debug() }
func Warn() *zerolog.Event  { return current.Load().Warn() }

func write(ev *zerolog.Event, category string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ev = ev.Str("category", category).Str("action", action)
	if c != nil {
		ev = ev.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("req_id", rid)
		}
	}
	if err != nil {
		ev = ev.Str("err", err.Error())
	}
	if len(fields) > 0 {
		ev = ev.Interface("fields", fields)
	}
	ev.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(current.Load().Info(), "info", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(current.Load().Info(), "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(current.Load().Warn(), "security", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(current.Load().Error(), "error", c, action, err, fields)
}
