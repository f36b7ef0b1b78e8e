package webapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type AthleteController struct {
	athleteStor  stor.AthleteStor
	ageGroupStor stor.AgeGroupStor
	catalogStor  stor.CatalogStor
}

func NewAthleteController(athleteStor stor.AthleteStor, ageGroupStor stor.AgeGroupStor, catalogStor stor.CatalogStor) *AthleteController {
	return &AthleteController{athleteStor: athleteStor, ageGroupStor: ageGroupStor, catalogStor: catalogStor}
}

// SearchAthletes searches the club's athletes by name with the q query parameter.
func (c *AthleteController) SearchAthletes(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	athletes, err := c.athleteStor.SearchAthletes(access.ClubID, ctx.QueryParam("q"), limit)
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, athletes)
}

func (c *AthleteController) CreateAthlete(ctx echo.Context) error {
	var req struct {
		FirstName  string  `json:"firstName" validate:"required,max=64"`
		LastName   string  `json:"lastName" validate:"required,max=64"`
		GenderID   string  `json:"genderId" validate:"required"`
		AgeGroupID *string `json:"ageGroupId"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return validationError(*rules.NewViolation("firstName", "First and last name are required"))
	}

	access := apimiddleware.AccessFrom(ctx)

	if _, err := c.catalogStor.GetGenderByID(req.GenderID); err != nil {
		if errors.Is(err, stor.ErrNotFound) {
			return validationError(*rules.NewViolation("genderId", "Gender does not exist"))
		}
		return err
	}

	if req.AgeGroupID != nil && *req.AgeGroupID == "" {
		req.AgeGroupID = nil
	}

	if req.AgeGroupID != nil {
		ageGroup, err := c.ageGroupStor.GetAgeGroupByID(*req.AgeGroupID)
		switch {
		case errors.Is(err, stor.ErrNotFound):
			return notFound("Age group")
		case err != nil:
			return err
		case ageGroup.ClubID != access.ClubID:
			return notFound("Age group")
		}
	}

	athlete, err := c.athleteStor.CreateAthlete(&clubmodel.Athlete{
		ClubID:     access.ClubID,
		GenderID:   req.GenderID,
		AgeGroupID: req.AgeGroupID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		return err
	}

	return success(ctx, http.StatusCreated, athlete)
}
