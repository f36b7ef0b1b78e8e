package clubauth

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/pkg/errors"
)

// MembershipLookup finds the membership row of a user in a club, whatever its
// active state, with the club loaded. A missing row is stor.ErrNotFound.
type MembershipLookup interface {
	GetMembership(userID, clubID string) (*clubmodel.UserClub, error)
}

// Request describes what an operation needs from the caller's club context.
type Request struct {
	Session *Session

	// ClubID is the club named explicitly by the request, if any. It wins over
	// the session's selected club.
	ClubID string

	RequireClub bool

	// RequireSessionMatch rejects an explicit ClubID that differs from the club
	// selected in the session.
	RequireSessionMatch bool

	// MinRole is the lowest role allowed. Empty means any active member.
	MinRole Role
}

// Access is the resolved club context handed to the operation.
type Access struct {
	ClubID string `json:"clubId"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// Gate decides whether a request may act in a club. It keeps no state between
// calls; every Resolve reads the membership again.
type Gate struct {
	memberships MembershipLookup
}

func NewGate(memberships MembershipLookup) *Gate {
	return &Gate{memberships: memberships}
}

// Resolve runs the checks in order and returns the first failure:
// ErrUnauthenticated, ErrClubContextRequired, ErrClubMismatch, ErrAccessDenied or
// ErrInsufficientPermissions. Store failures other than not found are returned
// wrapped.
func (g *Gate) Resolve(req Request) (*Access, error) {
	if req.Session == nil || strings.TrimSpace(req.Session.UserID) == "" {
		return nil, ErrUnauthenticated
	}

	explicit := strings.TrimSpace(req.ClubID)
	selected := strings.TrimSpace(req.Session.SelectedClubID)

	clubID := explicit
	if clubID == "" {
		clubID = selected
	}

	if clubID == "" {
		if req.RequireClub {
			return nil, ErrClubContextRequired
		}
		return &Access{UserID: req.Session.UserID}, nil
	}

	if req.RequireSessionMatch && explicit != "" && selected != "" && explicit != selected {
		return nil, ErrClubMismatch
	}

	membership, err := g.memberships.GetMembership(req.Session.UserID, clubID)
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return nil, ErrAccessDenied
	case err != nil:
		return nil, errors.Wrapf(err, "resolving access of user %s to club %s", req.Session.UserID, clubID)
	}

	if !membership.Active || (membership.Club != nil && !membership.Club.Active) {
		return nil, ErrAccessDenied
	}

	role, err := ParseRole(membership.Role)
	if err != nil {
		return nil, ErrAccessDenied
	}

	if req.MinRole != "" && !role.Meets(req.MinRole) {
		return nil, ErrInsufficientPermissions
	}

	return &Access{ClubID: clubID, UserID: req.Session.UserID, Role: role}, nil
}
