package webapi

import (
	"net/http"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
)

type ClubController struct {
	clubStor       stor.ClubStor
	membershipStor stor.MembershipStor
	gate           *clubauth.Gate
}

func NewClubController(clubStor stor.ClubStor, membershipStor stor.MembershipStor, gate *clubauth.Gate) *ClubController {
	return &ClubController{clubStor: clubStor, membershipStor: membershipStor, gate: gate}
}

type ClubMembership struct {
	ClubID   string        `json:"clubId"`
	ClubName string        `json:"clubName"`
	ClubSlug string        `json:"clubSlug"`
	Role     clubauth.Role `json:"role"`
	Selected bool          `json:"selected"`
}

// ListMyClubs lists the clubs the caller can act in.
func (c *ClubController) ListMyClubs(ctx echo.Context) error {
	session := apimiddleware.SessionFrom(ctx)
	if session == nil {
		return clubauth.ErrUnauthenticated
	}

	memberships, err := c.membershipStor.GetActiveMembershipsForUser(session.UserID)
	if err != nil {
		return err
	}

	clubs := make([]ClubMembership, 0, len(memberships))
	for _, m := range memberships {
		entry := ClubMembership{ClubID: m.ClubID, Role: clubauth.Role(m.Role), Selected: m.ClubID == session.SelectedClubID}
		if m.Club != nil {
			entry.ClubName = m.Club.Name
			entry.ClubSlug = m.Club.Slug
		}
		clubs = append(clubs, entry)
	}

	return success(ctx, http.StatusOK, clubs)
}

func (c *ClubController) CreateClub(ctx echo.Context) error {
	var req struct {
		Name        string `json:"name" validate:"required,max=128"`
		Description string `json:"description" validate:"max=1000"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return validationError(*rules.NewViolation("name", "Club name is required"))
	}

	session := apimiddleware.SessionFrom(ctx)
	club, err := c.clubStor.CreateClub(&clubmodel.Club{Name: name, Description: strings.TrimSpace(req.Description)}, session.UserID)
	if err != nil {
		return err
	}

	return success(ctx, http.StatusCreated, club)
}

// SelectClub checks that the caller may select a club. It does not change the
// session; the client follows up with PUT /api/session.
func (c *ClubController) SelectClub(ctx echo.Context) error {
	var req struct {
		ClubID string `json:"clubId" validate:"required"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	access, err := c.gate.Resolve(clubauth.Request{
		Session:     apimiddleware.SessionFrom(ctx),
		ClubID:      req.ClubID,
		RequireClub: true,
	})
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, access)
}

func (c *ClubController) DeactivateClub(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	club, err := c.clubStor.DeactivateClub(access.ClubID)
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, club)
}
