package webapi

import (
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const seasonExistsMessage = "Season with this name already exists"

type SeasonController struct {
	seasonStor stor.SeasonStor
}

func NewSeasonController(seasonStor stor.SeasonStor) *SeasonController {
	return &SeasonController{seasonStor: seasonStor}
}

type seasonRequest struct {
	Name string `json:"name" validate:"required"`
}

func (c *SeasonController) IndexSeasons(ctx echo.Context) error {
	seasons, err := c.seasonStor.ListSeasons()
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, seasons)
}

func (c *SeasonController) CreateSeason(ctx echo.Context) error {
	var req seasonRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := discipline.ValidateSeasonInput(discipline.SeasonInput{Name: req.Name}); err != nil {
		return err
	}

	season, err := c.seasonStor.CreateSeason(&clubmodel.Season{Name: req.Name})
	switch {
	case errors.Is(err, stor.ErrDuplicate):
		return NewAPIError(http.StatusConflict, seasonExistsMessage)
	case err != nil:
		return err
	}

	return success(ctx, http.StatusCreated, season)
}

func (c *SeasonController) UpdateSeason(ctx echo.Context) error {
	var req seasonRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	if err := discipline.ValidateSeasonInput(discipline.SeasonInput{Name: req.Name}); err != nil {
		return err
	}

	season, err := c.seasonStor.UpdateSeason(ctx.Param("id"), req.Name)
	switch {
	case errors.Is(err, stor.ErrDuplicate):
		return NewAPIError(http.StatusConflict, seasonExistsMessage)
	case errors.Is(err, stor.ErrNotFound):
		return notFound("Season")
	case err != nil:
		return err
	}

	return success(ctx, http.StatusOK, season)
}
