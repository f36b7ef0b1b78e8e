package apimiddleware

import (
	"time"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
)

// RequestLogger logs one line per request with its status and duration, and the
// user and club when known.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			fields := log.Fields{
				"method":   c.Request().Method,
				"path":     c.Path(),
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
			}

			if s := SessionFrom(c); s != nil {
				fields["user"] = s.UserID
			}

			if a := AccessFrom(c); a != nil && a.ClubID != "" {
				fields["club"] = a.ClubID
			}

			entry := log.WithFields(fields)
			if c.Response().Status >= 500 {
				entry.Error("request")
			} else {
				entry.Info("request")
			}

			return nil
		}
	}
}
