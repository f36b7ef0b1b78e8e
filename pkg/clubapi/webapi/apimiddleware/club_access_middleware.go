package apimiddleware

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const ClubIDHeader = "X-Club-ID"

type ResolveAccessFN func(req clubauth.Request) (*clubauth.Access, error)

type ClubIDFN func(c echo.Context) string

type ClubAccessConfig struct {
	Skipper       middleware.Skipper
	ResolveAccess ResolveAccessFN

	// ClubID extracts the explicitly requested club. Defaults to ClubIDFromRequest.
	ClubID ClubIDFN

	MinRole             clubauth.Role
	RequireSessionMatch bool
}

// ClubAccess middleware runs the club gate for the session SessionAuth stored
// and puts the resulting access in the context. It must come after SessionAuth.
func ClubAccess(config ClubAccessConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.ClubID == nil {
		config.ClubID = ClubIDFromRequest
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			access, err := config.ResolveAccess(clubauth.Request{
				Session:             SessionFrom(c),
				ClubID:              config.ClubID(c),
				RequireClub:         true,
				RequireSessionMatch: config.RequireSessionMatch,
				MinRole:             config.MinRole,
			})
			if err != nil {
				return err
			}

			SetAccess(c, access)
			return next(c)
		}
	}
}

// ClubIDFromRequest takes the club from the clubId query parameter, falling back
// to the X-Club-ID header.
func ClubIDFromRequest(c echo.Context) string {
	if clubID := strings.TrimSpace(c.QueryParam("clubId")); clubID != "" {
		return clubID
	}

	return strings.TrimSpace(c.Request().Header.Get(ClubIDHeader))
}

// ClubIDFromParam takes the club from a path parameter.
func ClubIDFromParam(name string) ClubIDFN {
	return func(c echo.Context) string {
		return c.Param(name)
	}
}
