package webapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/lock"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/performance"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	PerformanceCreated = "performance.created"
	PerformanceUpdated = "performance.updated"

	duplicatePerformanceMessage = "A performance with these details already exists"
)

// Publisher sends a club scoped event to live listeners.
type Publisher interface {
	Publish(clubID, command string, payload interface{})
}

// PerformanceController serializes writes per club, so the duplicate check and
// the record flags always see every earlier write to the club.
type PerformanceController struct {
	stors     *stor.Stors
	publisher Publisher
	locker    *lock.KeyLocker
	now       func() time.Time
}

func NewPerformanceController(stors *stor.Stors, publisher Publisher) *PerformanceController {
	return &PerformanceController{stors: stors, publisher: publisher, locker: lock.NewKeyLocker(), now: time.Now}
}

type performanceRequest struct {
	AthleteID      string   `json:"athleteId" validate:"required"`
	DisciplineID   string   `json:"disciplineId" validate:"required"`
	AgeGroupID     string   `json:"ageGroupId" validate:"required"`
	GenderID       string   `json:"genderId" validate:"required"`
	MedalID        *string  `json:"medalId"`
	TimeSeconds    *float64 `json:"timeSeconds"`
	DistanceMeters *float64 `json:"distanceMeters"`
	Date           string   `json:"date" validate:"required"`
	EventDetails   string   `json:"eventDetails" validate:"max=255"`
	ProofFileID    *string  `json:"proofFileId"`
	TeamMembers    []string `json:"teamMembers" validate:"max=10"`
}

// eventDate is a submitted performance date. A calendar date is midnight in
// the server's zone for the future check and is stored as UTC midnight of the
// same day.
type eventDate struct {
	at       time.Time
	calendar bool
}

func (d eventDate) stored() time.Time {
	if d.calendar {
		year, month, day := d.at.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	return d.at.UTC()
}

// parseEventDate accepts a calendar date (2006-01-02), read in loc, or an
// RFC 3339 timestamp.
func parseEventDate(s string, loc *time.Location) (eventDate, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return eventDate{at: d, calendar: true}, nil
	}

	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return eventDate{}, err
	}

	return eventDate{at: d}, nil
}

// references are the rows a performance points at.
type references struct {
	athlete    *clubmodel.Athlete
	discipline *clubmodel.Discipline
	ageGroup   *clubmodel.AgeGroup
	gender     *clubmodel.Gender
	medal      *clubmodel.Medal
}

func lookupError(what string, err error) error {
	if errors.Is(err, stor.ErrNotFound) {
		return notFound(what)
	}

	return err
}

// loadReferences fetches the referenced rows concurrently.
func (c *PerformanceController) loadReferences(req performanceRequest) (*references, error) {
	var (
		refs references
		g    errgroup.Group
	)

	g.Go(func() error {
		var err error
		refs.athlete, err = c.stors.AthleteStor.GetAthleteByID(req.AthleteID)
		return lookupError("Athlete", err)
	})

	g.Go(func() error {
		var err error
		refs.discipline, err = c.stors.DisciplineStor.GetDisciplineByID(req.DisciplineID)
		return lookupError("Discipline", err)
	})

	g.Go(func() error {
		var err error
		refs.ageGroup, err = c.stors.AgeGroupStor.GetAgeGroupByID(req.AgeGroupID)
		return lookupError("Age group", err)
	})

	g.Go(func() error {
		var err error
		refs.gender, err = c.stors.CatalogStor.GetGenderByID(req.GenderID)
		return lookupError("Gender", err)
	})

	if req.MedalID != nil && strings.TrimSpace(*req.MedalID) != "" {
		medalID := *req.MedalID
		g.Go(func() error {
			var err error
			refs.medal, err = c.stors.CatalogStor.GetMedalByID(medalID)
			return lookupError("Medal", err)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &refs, nil
}

func uniqueMembers(members []string) []string {
	seen := make(map[string]struct{}, len(members))
	var unique []string
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		unique = append(unique, m)
	}

	return unique
}

// submit runs the checks shared by create and update and returns the
// performance ready to store. existingID is empty for a create.
func (c *PerformanceController) submit(ctx echo.Context, access *clubauth.Access, existingID string) (*clubmodel.Performance, discipline.Kind, []rules.Violation, error) {
	var req performanceRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return nil, 0, nil, err
	}

	now := c.now()
	date, err := parseEventDate(req.Date, now.Location())
	if err != nil {
		return nil, 0, nil, validationError(*rules.NewViolation("date", "Date must be YYYY-MM-DD or an RFC 3339 timestamp"))
	}

	refs, err := c.loadReferences(req)
	if err != nil {
		return nil, 0, nil, err
	}

	if refs.athlete.ClubID != access.ClubID {
		return nil, 0, nil, notFound("Athlete")
	}

	if refs.ageGroup.ClubID != access.ClubID {
		return nil, 0, nil, notFound("Age group")
	}

	if members := uniqueMembers(req.TeamMembers); len(members) != 0 {
		count, err := c.stors.AthleteStor.CountAthletesInClub(access.ClubID, members)
		switch {
		case err != nil:
			return nil, 0, nil, err
		case count != len(members):
			return nil, 0, nil, notFound("Team member")
		}
	}

	format, err := refs.discipline.Format()
	if err != nil {
		return nil, 0, nil, errors.Wrapf(err, "discipline %s has an invalid format", refs.discipline.ID)
	}

	var medalID *string
	if refs.medal != nil {
		medalID = &refs.medal.ID
	}

	valueResult := performance.ValidateValue(format.Kind, performance.Candidate{
		TimeSeconds:    req.TimeSeconds,
		DistanceMeters: req.DistanceMeters,
		MedalID:        medalID,
		Date:           date.at,
	}, now)
	if !valueResult.IsValid {
		return nil, 0, nil, validationError(valueResult.Errors...)
	}

	teamResult := performance.ValidateTeam(refs.discipline.TeamSize, req.TeamMembers)
	if !teamResult.IsValid {
		return nil, 0, nil, validationError(teamResult.Errors...)
	}

	p := &clubmodel.Performance{
		ID:             existingID,
		ClubID:         access.ClubID,
		AthleteID:      refs.athlete.ID,
		DisciplineID:   refs.discipline.ID,
		AgeGroupID:     refs.ageGroup.ID,
		GenderID:       refs.gender.ID,
		MedalID:        medalID,
		TimeSeconds:    req.TimeSeconds,
		DistanceMeters: req.DistanceMeters,
		Date:           date.stored(),
		EventDetails:   strings.TrimSpace(req.EventDetails),
		CreatedByID:    access.UserID,
	}

	if err := p.SetTeamMembers(req.TeamMembers); err != nil {
		return nil, 0, nil, err
	}

	dup, err := c.stors.PerformanceStor.IsDuplicate(p.DuplicateKey(), existingID)
	switch {
	case err != nil:
		return nil, 0, nil, err
	case dup:
		return nil, 0, nil, NewAPIError(http.StatusConflict, duplicatePerformanceMessage)
	}

	if req.ProofFileID != nil && strings.TrimSpace(*req.ProofFileID) != "" {
		upload, err := c.stors.ProofUploadStor.GetProofUploadByID(*req.ProofFileID)
		switch {
		case errors.Is(err, stor.ErrNotFound):
			return nil, 0, nil, validationError(*rules.NewViolation("proofFileId", "Proof file has not been uploaded"))
		case err != nil:
			return nil, 0, nil, err
		case upload.ClubID != access.ClubID:
			return nil, 0, nil, validationError(*rules.NewViolation("proofFileId", "Proof file belongs to another club"))
		}
		p.ProofFileID = &upload.ID
	}

	return p, format.Kind, valueResult.Warnings, nil
}

func (c *PerformanceController) publish(command string, p *clubmodel.Performance) {
	if c.publisher == nil {
		return
	}

	c.publisher.Publish(p.ClubID, command, p)
}

func (c *PerformanceController) CreatePerformance(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	var (
		created  *clubmodel.Performance
		warnings []rules.Violation
	)

	err := c.locker.WithLock(access.ClubID, func() error {
		p, kind, w, err := c.submit(ctx, access, "")
		if err != nil {
			return err
		}

		warnings = w
		created, err = c.stors.PerformanceStor.CreatePerformance(p, kind)
		if errors.Is(err, stor.ErrDuplicate) {
			return NewAPIError(http.StatusConflict, duplicatePerformanceMessage)
		}

		return err
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"club": access.ClubID, "performance": created.ID, "user": access.UserID}).Info("performance created")
	c.publish(PerformanceCreated, created)

	return successWithWarnings(ctx, http.StatusCreated, created, warnings)
}

func (c *PerformanceController) UpdatePerformance(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	var (
		updated  *clubmodel.Performance
		warnings []rules.Violation
	)

	err := c.locker.WithLock(access.ClubID, func() error {
		existing, err := c.stors.PerformanceStor.GetPerformanceByID(ctx.Param("id"))
		switch {
		case errors.Is(err, stor.ErrNotFound):
			return notFound("Performance")
		case err != nil:
			return err
		case existing.ClubID != access.ClubID:
			return notFound("Performance")
		}

		p, kind, w, err := c.submit(ctx, access, existing.ID)
		if err != nil {
			return err
		}

		warnings = w
		updated, err = c.stors.PerformanceStor.UpdatePerformance(p, kind)
		if errors.Is(err, stor.ErrDuplicate) {
			return NewAPIError(http.StatusConflict, duplicatePerformanceMessage)
		}

		return err
	})
	if err != nil {
		return err
	}

	c.publish(PerformanceUpdated, updated)

	return successWithWarnings(ctx, http.StatusOK, updated, warnings)
}

func (c *PerformanceController) ShowPerformance(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)

	p, err := c.stors.PerformanceStor.GetPerformanceByID(ctx.Param("id"))
	switch {
	case errors.Is(err, stor.ErrNotFound):
		return notFound("Performance")
	case err != nil:
		return err
	case p.ClubID != access.ClubID:
		return notFound("Performance")
	}

	return success(ctx, http.StatusOK, p)
}

// IndexPerformances lists the club's performances, newest first, optionally
// filtered by athleteId and disciplineId.
func (c *PerformanceController) IndexPerformances(ctx echo.Context) error {
	access := apimiddleware.AccessFrom(ctx)
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	performances, err := c.stors.PerformanceStor.ListPerformancesForClub(access.ClubID, stor.PerformanceFilter{
		AthleteID:    ctx.QueryParam("athleteId"),
		DisciplineID: ctx.QueryParam("disciplineId"),
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	return success(ctx, http.StatusOK, performances)
}
