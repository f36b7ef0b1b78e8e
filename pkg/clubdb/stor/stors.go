package stor

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/performance"
	"gorm.io/gorm"
)

type UserStor interface {
	CreateUser(user *clubmodel.User) (*clubmodel.User, error)
	GetUserByID(userID string) (*clubmodel.User, error)
	GetUserByEmail(email string) (*clubmodel.User, error)
}

type ClubStor interface {
	CreateClub(club *clubmodel.Club, ownerID string) (*clubmodel.Club, error)
	GetClubByID(clubID string) (*clubmodel.Club, error)
	DeactivateClub(clubID string) (*clubmodel.Club, error)
}

// MembershipStor is the store side of the club gate. GetMembership returns the
// row whatever its Active state, with Club loaded.
type MembershipStor interface {
	GetMembership(userID, clubID string) (*clubmodel.UserClub, error)
	GetActiveMembershipsForUser(userID string) ([]clubmodel.UserClub, error)
	GetMembersOfClub(clubID string) ([]clubmodel.UserClub, error)
	SetMembership(userID, clubID, role string, active bool) (*clubmodel.UserClub, error)
}

type SeasonStor interface {
	CreateSeason(season *clubmodel.Season) (*clubmodel.Season, error)
	UpdateSeason(seasonID, name string) (*clubmodel.Season, error)
	GetSeasonByID(seasonID string) (*clubmodel.Season, error)
	ListSeasons() ([]clubmodel.Season, error)
}

type DisciplineStor interface {
	CreateDiscipline(d *clubmodel.Discipline) (*clubmodel.Discipline, error)
	GetDisciplineByID(disciplineID string) (*clubmodel.Discipline, error)
	ListDisciplines(seasonID string) ([]clubmodel.Discipline, error)
}

type AgeGroupStor interface {
	CreateAgeGroup(ageGroup *clubmodel.AgeGroup) (*clubmodel.AgeGroup, error)
	GetAgeGroupByID(ageGroupID string) (*clubmodel.AgeGroup, error)
	ListAgeGroupsForClub(clubID string) ([]clubmodel.AgeGroup, error)
}

type AthleteStor interface {
	CreateAthlete(athlete *clubmodel.Athlete) (*clubmodel.Athlete, error)
	GetAthleteByID(athleteID string) (*clubmodel.Athlete, error)
	SearchAthletes(clubID, query string, limit int) ([]clubmodel.Athlete, error)
	CountAthletesInClub(clubID string, athleteIDs []string) (int, error)
}

// CatalogStor serves the fixed gender and medal tables.
type CatalogStor interface {
	ListGenders() ([]clubmodel.Gender, error)
	GetGenderByID(genderID string) (*clubmodel.Gender, error)
	ListMedals() ([]clubmodel.Medal, error)
	GetMedalByID(medalID string) (*clubmodel.Medal, error)
}

type PerformanceFilter struct {
	AthleteID    string
	DisciplineID string
	Limit        int
}

// PerformanceStor writes performances and sets their personal best and club
// record flags in the same transaction, using kind to compare marks.
type PerformanceStor interface {
	CreatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error)
	UpdatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error)
	GetPerformanceByID(performanceID string) (*clubmodel.Performance, error)
	ListPerformancesForClub(clubID string, filter PerformanceFilter) ([]clubmodel.Performance, error)
	IsDuplicate(key performance.Key, excludeID string) (bool, error)
}

type ProofUploadStor interface {
	CreateProofUpload(upload *clubmodel.ProofUpload) (*clubmodel.ProofUpload, error)
	GetProofUploadByID(uploadID string) (*clubmodel.ProofUpload, error)
}

type Stors struct {
	UserStor        UserStor
	ClubStor        ClubStor
	MembershipStor  MembershipStor
	SeasonStor      SeasonStor
	DisciplineStor  DisciplineStor
	AgeGroupStor    AgeGroupStor
	AthleteStor     AthleteStor
	CatalogStor     CatalogStor
	PerformanceStor PerformanceStor
	ProofUploadStor ProofUploadStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		UserStor:        NewGormUserStor(db),
		ClubStor:        NewGormClubStor(db),
		MembershipStor:  NewGormMembershipStor(db),
		SeasonStor:      NewGormSeasonStor(db),
		DisciplineStor:  NewGormDisciplineStor(db),
		AgeGroupStor:    NewGormAgeGroupStor(db),
		AthleteStor:     NewGormAthleteStor(db),
		CatalogStor:     NewGormCatalogStor(db),
		PerformanceStor: NewGormPerformanceStor(db),
		ProofUploadStor: NewGormProofUploadStor(db),
	}
}
