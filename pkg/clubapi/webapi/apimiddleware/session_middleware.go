package apimiddleware

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type ParseSessionFN func(token string) (*clubauth.Session, error)

type SessionConfig struct {
	Skipper      middleware.Skipper
	ParseSession ParseSessionFN

	// QueryParam, when set, is also checked for the token. Browsers cannot set
	// headers on websocket upgrades.
	QueryParam string
}

// SessionAuth middleware reads the session token from the Authorization header
// (Bearer scheme) and stores the parsed session in the context. Requests without
// a valid token get clubauth.ErrUnauthenticated.
func SessionAuth(config SessionConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			token := tokenFromRequest(c, config.QueryParam)
			if token == "" {
				return clubauth.ErrUnauthenticated
			}

			session, err := config.ParseSession(token)
			if err != nil || session == nil {
				return clubauth.ErrUnauthenticated
			}

			SetSession(c, session)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context, queryParam string) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	if queryParam != "" {
		return c.QueryParam(queryParam)
	}

	return ""
}
