package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localInternalError = "internal_error"

// RequestLogger registra cada petición con zerolog: debug para 2xx/3xx, warn para 4xx,
// error (con la causa guardada por writeError) para 5xx.
func RequestLogger(zl zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = zl.Error()
			if cause, ok := c.Locals(localInternalError).(error); ok {
				ev = ev.Err(cause)
			} else if err != nil {
				ev = ev.Err(err)
			}
		case status >= 400:
			ev = zl.Warn()
		default:
			ev = zl.Debug()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("firm_id", GetFirmID(c)).
			Msg("http")
		return err
	}
}
