package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acuchart/acuchart/internal/platform/auth"
)

// Logger emits one structured line per request. The authenticated
// account, when present, is attached so chart activity can be traced
// back to a practitioner.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			rid, _ := c.Get("request_id").(string)
			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Int64("bytes_out", c.Response().Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())
			if aid, ok := auth.AccountIDFromContext(req.Context()); ok {
				evt = evt.Str("account_id", aid.String())
			}
			evt.Msg("handled request")

			return err
		}
	}
}
