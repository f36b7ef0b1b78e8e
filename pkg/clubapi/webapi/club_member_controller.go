package webapi

import (
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type ClubMemberController struct {
	membershipStor stor.MembershipStor
	userStor       stor.UserStor
}

func NewClubMemberController(membershipStor stor.MembershipStor, userStor stor.UserStor) *ClubMemberController {
	return &ClubMemberController{membershipStor: membershipStor, userStor: userStor}
}

type ClubMember struct {
	UserID string        `json:"userId"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Role   clubauth.Role `json:"role"`
	Active bool          `json:"active"`
}

func (c *ClubMemberController) ListMembers(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	memberships, err := c.membershipStor.GetMembersOfClub(access.ClubID)
	if err != nil {
		return err
	}

	members := make([]ClubMember, 0, len(memberships))
	for _, m := range memberships {
		member := ClubMember{UserID: m.UserID, Role: clubauth.Role(m.Role), Active: m.Active}
		if m.User != nil {
			member.Email = m.User.Email
			member.Name = m.User.Name
		}
		members = append(members, member)
	}

	return success(ctx, http.StatusOK, members)
}

// SetMember adds a user to the club or changes their role or active flag. Nobody
// can grant a role above their own, and only owners can change an owner.
func (c *ClubMemberController) SetMember(ctx echo.Context) error {
	var req struct {
		Email  string `json:"email" validate:"required,email"`
		Role   string `json:"role" validate:"required,oneof=OWNER ADMIN COACH MEMBER"`
		Active *bool  `json:"active"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	access := apimiddleware.AccessFrom(ctx)

	role, err := clubauth.ParseRole(req.Role)
	if err != nil {
		return validationError(*rules.NewViolation("role", "Unknown role"))
	}

	if !access.Role.Meets(role) {
		return clubauth.ErrInsufficientPermissions
	}

	user, err := c.userStor.GetUserByEmail(req.Email)
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return notFound("User")
	case err != nil:
		return err
	}

	existing, err := c.membershipStor.GetMembership(user.ID, access.ClubID)
	switch {
	case err == nil && clubauth.Role(existing.Role) == clubauth.Owner && access.Role != clubauth.Owner:
		return clubauth.ErrInsufficientPermissions
	case err != nil && !errors.Is(err, stor.ErrNotFound):
		return err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	membership, err := c.membershipStor.SetMembership(user.ID, access.ClubID, role.String(), active)
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, ClubMember{
		UserID: membership.UserID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   role,
		Active: membership.Active,
	})
}
