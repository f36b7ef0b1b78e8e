package apimiddleware

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/labstack/echo/v4"
)

const (
	sessionKey = "session"
	accessKey  = "access"
)

// SessionFrom returns the session SessionAuth stored, or nil.
func SessionFrom(c echo.Context) *clubauth.Session {
	s, _ := c.Get(sessionKey).(*clubauth.Session)
	return s
}

func SetSession(c echo.Context, s *clubauth.Session) {
	c.Set(sessionKey, s)
}

// AccessFrom returns the club access ClubAccess resolved, or nil.
func AccessFrom(c echo.Context) *clubauth.Access {
	a, _ := c.Get(accessKey).(*clubauth.Access)
	return a
}

func SetAccess(c echo.Context, a *clubauth.Access) {
	c.Set(accessKey, a)
}
