package webapi

import (
	"net/http"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type AgeGroupController struct {
	ageGroupStor stor.AgeGroupStor
}

func NewAgeGroupController(ageGroupStor stor.AgeGroupStor) *AgeGroupController {
	return &AgeGroupController{ageGroupStor: ageGroupStor}
}

// IndexAgeGroups lists the club's age groups in ordinal order.
func (c *AgeGroupController) IndexAgeGroups(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	ageGroups, err := c.ageGroupStor.ListAgeGroupsForClub(access.ClubID)
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, ageGroups)
}

func (c *AgeGroupController) CreateAgeGroup(ctx echo.Context) error {
	var req struct {
		Name    string `json:"name" validate:"required,max=64"`
		Ordinal int    `json:"ordinal" validate:"required,min=1"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return validationError(*rules.NewViolation("name", "Age group name is required"))
	}

	access := apimiddleware.AccessFrom(ctx)
	ageGroup, err := c.ageGroupStor.CreateAgeGroup(&clubmodel.AgeGroup{ClubID: access.ClubID, Name: name, Ordinal: req.Ordinal})
	switch {
	case errors.Is(err, stor.ErrDuplicate):
		return NewAPIError(http.StatusConflict, "Age group with this name already exists")
	case err != nil:
		return err
	}

	return success(ctx, http.StatusCreated, ageGroup)
}
