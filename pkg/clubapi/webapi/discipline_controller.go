package webapi

import (
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type DisciplineController struct {
	disciplineStor stor.DisciplineStor
}

func NewDisciplineController(disciplineStor stor.DisciplineStor) *DisciplineController {
	return &DisciplineController{disciplineStor: disciplineStor}
}

// IndexDisciplines lists disciplines, optionally only those of the seasonId
// query parameter.
func (c *DisciplineController) IndexDisciplines(ctx echo.Context) error {
	disciplines, err := c.disciplineStor.ListDisciplines(ctx.QueryParam("seasonId"))
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, disciplines)
}

func (c *DisciplineController) ShowDiscipline(ctx echo.Context) error {
	d, err := c.disciplineStor.GetDisciplineByID(ctx.Param("id"))
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return notFound("Discipline")
	case err != nil:
		return err
	}

	return success(ctx, http.StatusOK, d)
}

func (c *DisciplineController) CreateDiscipline(ctx echo.Context) error {
	var req struct {
		SeasonID   string `json:"seasonId"`
		Name       string `json:"name"`
		IsTimed    bool   `json:"isTimed"`
		IsMeasured bool   `json:"isMeasured"`
		TeamSize   *int   `json:"teamSize"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	prepared, err := discipline.PrepareForCreation(discipline.Input{
		SeasonID:   req.SeasonID,
		Name:       req.Name,
		IsTimed:    req.IsTimed,
		IsMeasured: req.IsMeasured,
		TeamSize:   req.TeamSize,
	})
	if err != nil {
		return err
	}

	d, err := c.disciplineStor.CreateDiscipline(&clubmodel.Discipline{
		SeasonID:        prepared.SeasonID,
		Name:            prepared.Name,
		IsTimed:         prepared.IsTimed,
		IsMeasured:      prepared.IsMeasured,
		IsSmallerBetter: prepared.IsSmallerBetter,
		TeamSize:        prepared.TeamSize,
	})
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return validationError(*rules.NewViolation("seasonId", "Season does not exist"))
	case err != nil:
		return err
	}

	return success(ctx, http.StatusCreated, d)
}
