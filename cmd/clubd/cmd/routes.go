package cmd

import (
	"net/http"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clog"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubapi/webapi/apimiddleware"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/feed"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const proofsBasePath = "/api/proofs/"

type RouteDependencies struct {
	e         *echo.Echo
	stors     *stor.Stors
	gate      *clubauth.Gate
	issuer    *clubauth.SessionIssuer
	hub       *feed.Hub
	proofs    http.Handler
	logging   *clog.Logging
	rateLimit int
}

// rateLimiter throttles writes per user, or per address before login.
func rateLimiter(perSecond int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 20
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			m := c.Request().Method
			return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     perSecond * 2,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if s := apimiddleware.SessionFrom(c); s != nil {
				return "user:" + s.UserID, nil
			}
			return "ip:" + c.RealIP(), nil
		},
	})
}

func setupRoutes(deps RouteDependencies) {
	e := deps.e
	e.HTTPErrorHandler = webapi.HTTPErrorHandler
	e.Validator = webapi.NewRequestValidator()
	e.Use(apimiddleware.RequestLogger())
	e.Use(middleware.Recover())

	limiter := rateLimiter(deps.rateLimit)

	clubAccess := func(minRole clubauth.Role) echo.MiddlewareFunc {
		return apimiddleware.ClubAccess(apimiddleware.ClubAccessConfig{
			ResolveAccess:       deps.gate.Resolve,
			MinRole:             minRole,
			RequireSessionMatch: true,
		})
	}
	member := clubAccess(clubauth.Member)
	coach := clubAccess(clubauth.Coach)
	admin := clubAccess(clubauth.Admin)

	systemAdmin := apimiddleware.SystemAdminAuth(apimiddleware.SystemAdminConfig{
		GetUserByID: deps.stors.UserStor.GetUserByID,
	})

	// Both manage their own authentication.
	if deps.hub != nil {
		e.GET("/api/feed", echo.WrapHandler(http.HandlerFunc(deps.hub.ServeWS)))
	}
	if deps.proofs != nil {
		proofsHandler := echo.WrapHandler(http.StripPrefix(proofsBasePath, deps.proofs))
		e.Any("/api/proofs", echo.WrapHandler(http.StripPrefix("/api/proofs", deps.proofs)))
		e.Any(proofsBasePath+"*", proofsHandler)
	}

	sessionController := webapi.NewSessionController(deps.stors.UserStor, deps.gate, deps.issuer)
	e.POST("/api/session/login", sessionController.Login, limiter)

	g := e.Group("/api", apimiddleware.SessionAuth(apimiddleware.SessionConfig{ParseSession: deps.issuer.Parse}), limiter)

	g.GET("/session", sessionController.GetSession)
	g.PUT("/session", sessionController.UpdateSession)

	clubController := webapi.NewClubController(deps.stors.ClubStor, deps.stors.MembershipStor, deps.gate)
	g.GET("/clubs", clubController.ListMyClubs)
	g.POST("/clubs", clubController.CreateClub, systemAdmin)
	g.POST("/clubs/select", clubController.SelectClub)
	g.POST("/clubs/:clubId/deactivate", clubController.DeactivateClub, apimiddleware.ClubAccess(apimiddleware.ClubAccessConfig{
		ResolveAccess:       deps.gate.Resolve,
		ClubID:              apimiddleware.ClubIDFromParam("clubId"),
		MinRole:             clubauth.Owner,
		RequireSessionMatch: true,
	}))

	clubMemberController := webapi.NewClubMemberController(deps.stors.MembershipStor, deps.stors.UserStor)
	g.GET("/club-members", clubMemberController.ListMembers, member)
	g.POST("/club-members", clubMemberController.SetMember, admin)

	seasonController := webapi.NewSeasonController(deps.stors.SeasonStor)
	g.GET("/seasons", seasonController.IndexSeasons, member)
	g.POST("/seasons", seasonController.CreateSeason, admin)
	g.PUT("/seasons/:id", seasonController.UpdateSeason, admin)

	disciplineController := webapi.NewDisciplineController(deps.stors.DisciplineStor)
	g.GET("/disciplines", disciplineController.IndexDisciplines, member)
	g.GET("/disciplines/:id", disciplineController.ShowDiscipline, member)
	g.POST("/disciplines", disciplineController.CreateDiscipline, admin)

	ageGroupController := webapi.NewAgeGroupController(deps.stors.AgeGroupStor)
	g.GET("/age-groups", ageGroupController.IndexAgeGroups, member)
	g.POST("/age-groups", ageGroupController.CreateAgeGroup, admin)

	athleteController := webapi.NewAthleteController(deps.stors.AthleteStor, deps.stors.AgeGroupStor, deps.stors.CatalogStor)
	g.GET("/athletes/search", athleteController.SearchAthletes, member)
	g.POST("/athletes", athleteController.CreateAthlete, coach)

	catalogController := webapi.NewCatalogController(deps.stors.CatalogStor)
	g.GET("/genders", catalogController.ListGenders)
	g.GET("/medals", catalogController.ListMedals)
	g.POST("/medals", catalogController.ValidateMedal)

	var publisher webapi.Publisher
	if deps.hub != nil {
		publisher = deps.hub
	}
	performanceController := webapi.NewPerformanceController(deps.stors, publisher)
	g.GET("/performances", performanceController.IndexPerformances, member)
	g.GET("/performances/:id", performanceController.ShowPerformance, member)
	g.POST("/performances", performanceController.CreatePerformance, coach)
	g.PUT("/performances/:id", performanceController.UpdatePerformance, coach)

	logController := webapi.NewLogController(deps.logging)
	g.GET("/admin/logging", logController.ShowLogging, systemAdmin)
	g.PUT("/admin/logging", logController.SetLogging, systemAdmin)
}
