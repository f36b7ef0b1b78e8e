package apimiddleware

import (
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type GetUserByIDFN func(userID string) (*clubmodel.User, error)

type SystemAdminConfig struct {
	Skipper     middleware.Skipper
	GetUserByID GetUserByIDFN
}

// SystemAdminAuth middleware only lets through users flagged as system
// administrators. It must come after SessionAuth.
func SystemAdminAuth(config SystemAdminConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			session := SessionFrom(c)
			if session == nil {
				return clubauth.ErrUnauthenticated
			}

			user, err := config.GetUserByID(session.UserID)
			switch {
			case err != nil:
				return clubauth.ErrUnauthenticated
			case !user.IsAdmin:
				return echo.NewHTTPError(http.StatusForbidden, "Administrator access required")
			default:
				return next(c)
			}
		}
	}
}
