package webapi

import (
	"fmt"
	"net/http"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/medal"
	"github.com/labstack/echo/v4"
)

// CatalogController serves the fixed gender and medal catalogs.
type CatalogController struct {
	catalogStor stor.CatalogStor
}

func NewCatalogController(catalogStor stor.CatalogStor) *CatalogController {
	return &CatalogController{catalogStor: catalogStor}
}

func (c *CatalogController) ListGenders(ctx echo.Context) error {
	genders, err := c.catalogStor.ListGenders()
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, genders)
}

type MedalEntry struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Display  string `json:"display"`
}

func (c *CatalogController) ListMedals(ctx echo.Context) error {
	medals, err := c.catalogStor.ListMedals()
	if err != nil {
		return err
	}

	entries := make([]MedalEntry, 0, len(medals))
	for _, m := range medals {
		display, err := medal.FormatDisplay(m.Position)
		if err != nil {
			return err
		}
		entries = append(entries, MedalEntry{ID: m.ID, Position: m.Position, Name: m.Name, Display: display})
	}

	return success(ctx, http.StatusOK, entries)
}

// ValidateMedal checks a medal definition against the fixed catalog. The
// catalog cannot be changed, so nothing is stored.
func (c *CatalogController) ValidateMedal(ctx echo.Context) error {
	var req struct {
		Position int    `json:"position" validate:"required"`
		Name     string `json:"name" validate:"required"`
	}

	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	var details []rules.Violation

	expected, err := medal.NameForPosition(req.Position)
	if err != nil {
		details = append(details, *rules.NewViolation("position", "Position must be between 1 and 12"))
	}

	if !medal.ValidateName(req.Name) {
		details = append(details, *rules.NewViolation("name", "Name must be Gold, Silver or Bronze"))
	} else if expected != "" && expected != req.Name {
		details = append(details, *rules.NewViolation("name", fmt.Sprintf("Position %d is %s", req.Position, expected)))
	}

	if len(details) != 0 {
		return validationError(details...)
	}

	display, _ := medal.FormatDisplay(req.Position)
	return success(ctx, http.StatusOK, MedalEntry{Position: req.Position, Name: req.Name, Display: display})
}
