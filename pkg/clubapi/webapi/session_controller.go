package webapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionController is the session provider: it issues session tokens and is the
// only place the selected club of a session changes.
type SessionController struct {
	userStor stor.UserStor
	gate     *clubauth.Gate
	issuer   *clubauth.SessionIssuer
}

func NewSessionController(userStor stor.UserStor, gate *clubauth.Gate, issuer *clubauth.SessionIssuer) *SessionController {
	return &SessionController{userStor: userStor, gate: gate, issuer: issuer}
}

type SessionResponse struct {
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expiresAt"`
	UserID         string    `json:"userId"`
	SelectedClubID string    `json:"selectedClubId"`
}

func (c *SessionController) issue(ctx echo.Context, status int, session clubauth.Session) error {
	token, expires, err := c.issuer.Issue(session)
	if err != nil {
		return errors.Wrapf(err, "issuing session for user %s", session.UserID)
	}

	return success(ctx, status, SessionResponse{
		Token:          token,
		ExpiresAt:      expires,
		UserID:         session.UserID,
		SelectedClubID: session.SelectedClubID,
	})
}

func (c *SessionController) Login(ctx echo.Context) error {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := c.userStor.GetUserByEmail(req.Email)
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return NewAPIError(http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		return err
	case !clubauth.CheckPassword(user.Password, req.Password):
		log.Infof("Failed login for %s", req.Email)
		return NewAPIError(http.StatusUnauthorized, "Invalid email or password")
	}

	return c.issue(ctx, http.StatusOK, clubauth.Session{UserID: user.ID})
}

func (c *SessionController) GetSession(ctx echo.Context) error {
	session := apimiddleware.SessionFrom(ctx)
	if session == nil {
		return clubauth.ErrUnauthenticated
	}

	return success(ctx, http.StatusOK, session)
}

// UpdateSession changes the selected club and returns a new token. The club is
// checked against the caller's memberships again; an empty clubId clears the
// selection.
func (c *SessionController) UpdateSession(ctx echo.Context) error {
	var req struct {
		ClubID string `json:"clubId"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	session := apimiddleware.SessionFrom(ctx)
	if session == nil {
		return clubauth.ErrUnauthenticated
	}

	updated := clubauth.Session{UserID: session.UserID}

	if clubID := strings.TrimSpace(req.ClubID); clubID != "" {
		access, err := c.gate.Resolve(clubauth.Request{Session: session, ClubID: clubID, RequireClub: true})
		if err != nil {
			return err
		}
		updated.SelectedClubID = access.ClubID
	}

	return c.issue(ctx, http.StatusOK, updated)
}
