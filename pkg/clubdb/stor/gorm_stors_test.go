package stor_test

import (
	"testing"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/tutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestGormSeasonStor(t *testing.T) {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))

	season, err := stors.SeasonStor.CreateSeason(&clubmodel.Season{Name: " Cross Country "})
	require.NoError(t, err)
	assert.Equal(t, "Cross Country", season.Name)
	assert.NotEmpty(t, season.ID)

	_, err = stors.SeasonStor.CreateSeason(&clubmodel.Season{Name: "Cross Country"})
	assert.ErrorIs(t, err, stor.ErrDuplicate)

	track, err := stors.SeasonStor.CreateSeason(&clubmodel.Season{Name: "Track"})
	require.NoError(t, err)

	_, err = stors.SeasonStor.UpdateSeason(track.ID, "Cross Country")
	assert.ErrorIs(t, err, stor.ErrDuplicate)

	updated, err := stors.SeasonStor.UpdateSeason(track.ID, "Track and Field")
	require.NoError(t, err)
	assert.Equal(t, "Track and Field", updated.Name)

	_, err = stors.SeasonStor.GetSeasonByID("missing")
	assert.ErrorIs(t, err, stor.ErrNotFound)

	seasons, err := stors.SeasonStor.ListSeasons()
	require.NoError(t, err)
	assert.Len(t, seasons, 2)
}

func TestGormClubAndMembershipStor(t *testing.T) {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))

	owner := tutil.CreateUser(t, stors, "owner@example.com", false)
	club := tutil.CreateClub(t, stors, "Harriers AC", owner)
	assert.Equal(t, "harriers-ac", club.Slug)
	assert.True(t, club.Active)

	second := tutil.CreateClub(t, stors, "Harriers AC", owner)
	assert.Equal(t, "harriers-ac-1", second.Slug)

	m, err := stors.MembershipStor.GetMembership(owner.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, clubmodel.RoleOwner, m.Role)
	require.NotNil(t, m.Club)
	assert.Equal(t, "Harriers AC", m.Club.Name)

	coach := tutil.AddMember(t, stors, club, "coach@example.com", clubmodel.RoleCoach)
	_, err = stors.MembershipStor.SetMembership(coach.ID, club.ID, clubmodel.RoleAdmin, false)
	require.NoError(t, err)

	m, err = stors.MembershipStor.GetMembership(coach.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, clubmodel.RoleAdmin, m.Role)
	assert.False(t, m.Active)

	members, err := stors.MembershipStor.GetMembersOfClub(club.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	active, err := stors.MembershipStor.GetActiveMembershipsForUser(owner.ID)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = stors.ClubStor.DeactivateClub(second.ID)
	require.NoError(t, err)

	active, err = stors.MembershipStor.GetActiveMembershipsForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, club.ID, active[0].ClubID)

	_, err = stors.MembershipStor.GetMembership(coach.ID, second.ID)
	assert.ErrorIs(t, err, stor.ErrNotFound)
}

func TestGormAgeGroupStor(t *testing.T) {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))
	owner := tutil.CreateUser(t, stors, "owner@example.com", false)
	club := tutil.CreateClub(t, stors, "Harriers", owner)

	_, err := stors.AgeGroupStor.CreateAgeGroup(&clubmodel.AgeGroup{ClubID: club.ID, Name: "U15", Ordinal: 2})
	require.NoError(t, err)
	_, err = stors.AgeGroupStor.CreateAgeGroup(&clubmodel.AgeGroup{ClubID: club.ID, Name: "U13", Ordinal: 1})
	require.NoError(t, err)

	_, err = stors.AgeGroupStor.CreateAgeGroup(&clubmodel.AgeGroup{ClubID: club.ID, Name: "U15", Ordinal: 3})
	assert.ErrorIs(t, err, stor.ErrDuplicate)

	ageGroups, err := stors.AgeGroupStor.ListAgeGroupsForClub(club.ID)
	require.NoError(t, err)
	require.Len(t, ageGroups, 2)
	assert.Equal(t, "U13", ageGroups[0].Name)
}

func TestGormAthleteSearch(t *testing.T) {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))
	owner := tutil.CreateUser(t, stors, "owner@example.com", false)
	club := tutil.CreateClub(t, stors, "Harriers", owner)
	other := tutil.CreateClub(t, stors, "Striders", owner)
	female := tutil.GenderByName(t, stors, "Female")

	for _, a := range []clubmodel.Athlete{
		{ClubID: club.ID, GenderID: female.ID, FirstName: "Jane", LastName: "Smith"},
		{ClubID: club.ID, GenderID: female.ID, FirstName: "Janet", LastName: "Jones"},
		{ClubID: other.ID, GenderID: female.ID, FirstName: "Jane", LastName: "Doe"},
	} {
		a := a
		_, err := stors.AthleteStor.CreateAthlete(&a)
		require.NoError(t, err)
	}

	found, err := stors.AthleteStor.SearchAthletes(club.ID, "jan", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = stors.AthleteStor.SearchAthletes(club.ID, "jane smi", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Smith", found[0].LastName)

	ids := []string{found[0].ID, "not-an-athlete"}
	count, err := stors.AthleteStor.CountAthletesInClub(club.ID, ids)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type performanceFixture struct {
	stors      *stor.Stors
	club       *clubmodel.Club
	athlete    *clubmodel.Athlete
	discipline *clubmodel.Discipline
	ageGroup   *clubmodel.AgeGroup
	gender     clubmodel.Gender
}

func newPerformanceFixture(t *testing.T) performanceFixture {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))
	owner := tutil.CreateUser(t, stors, "owner@example.com", false)
	club := tutil.CreateClub(t, stors, "Harriers", owner)
	gender := tutil.GenderByName(t, stors, "Male")

	season, err := stors.SeasonStor.CreateSeason(&clubmodel.Season{Name: "Track"})
	require.NoError(t, err)

	d, err := stors.DisciplineStor.CreateDiscipline(&clubmodel.Discipline{
		SeasonID: season.ID, Name: "100m", IsTimed: true, IsSmallerBetter: true,
	})
	require.NoError(t, err)

	ageGroup, err := stors.AgeGroupStor.CreateAgeGroup(&clubmodel.AgeGroup{ClubID: club.ID, Name: "Senior", Ordinal: 1})
	require.NoError(t, err)

	athlete, err := stors.AthleteStor.CreateAthlete(&clubmodel.Athlete{ClubID: club.ID, GenderID: gender.ID, FirstName: "Sam", LastName: "Runner"})
	require.NoError(t, err)

	return performanceFixture{stors: stors, club: club, athlete: athlete, discipline: d, ageGroup: ageGroup, gender: gender}
}

func (f performanceFixture) performance(date time.Time, timeSeconds float64) *clubmodel.Performance {
	return &clubmodel.Performance{
		ClubID:       f.club.ID,
		AthleteID:    f.athlete.ID,
		DisciplineID: f.discipline.ID,
		AgeGroupID:   f.ageGroup.ID,
		GenderID:     f.gender.ID,
		Date:         date,
		EventDetails: "Club Champs",
		TimeSeconds:  floatPtr(timeSeconds),
	}
}

func TestGormPerformanceDuplicates(t *testing.T) {
	f := newPerformanceFixture(t)
	ps := f.stors.PerformanceStor
	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	p, err := ps.CreatePerformance(f.performance(date, 11.2), discipline.Timed)
	require.NoError(t, err)

	dup, err := ps.IsDuplicate(p.DuplicateKey(), "")
	require.NoError(t, err)
	assert.True(t, dup)

	dup, err = ps.IsDuplicate(p.DuplicateKey(), p.ID)
	require.NoError(t, err)
	assert.False(t, dup)

	key := p.DuplicateKey()
	key.EventDetails = "League"
	dup, err = ps.IsDuplicate(key, "")
	require.NoError(t, err)
	assert.False(t, dup)

	// The unique index catches a second insert that skipped the check.
	_, err = ps.CreatePerformance(f.performance(date, 11.0), discipline.Timed)
	assert.ErrorIs(t, err, stor.ErrDuplicate)
}

func TestGormPerformanceRecordFlags(t *testing.T) {
	f := newPerformanceFixture(t)
	ps := f.stors.PerformanceStor
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	first, err := ps.CreatePerformance(f.performance(day, 11.5), discipline.Timed)
	require.NoError(t, err)
	assert.True(t, first.IsPersonalBest)
	assert.True(t, first.IsClubRecord)

	slower, err := ps.CreatePerformance(f.performance(day.AddDate(0, 0, 1), 11.9), discipline.Timed)
	require.NoError(t, err)
	assert.False(t, slower.IsPersonalBest)
	assert.False(t, slower.IsClubRecord)

	faster, err := ps.CreatePerformance(f.performance(day.AddDate(0, 0, 2), 11.1), discipline.Timed)
	require.NoError(t, err)
	assert.True(t, faster.IsPersonalBest)

	first, err = ps.GetPerformanceByID(first.ID)
	require.NoError(t, err)
	assert.False(t, first.IsPersonalBest)
	assert.False(t, first.IsClubRecord)

	// Slowing the best result down hands the flags back.
	faster.TimeSeconds = floatPtr(12.5)
	_, err = ps.UpdatePerformance(faster, discipline.Timed)
	require.NoError(t, err)

	first, err = ps.GetPerformanceByID(first.ID)
	require.NoError(t, err)
	assert.True(t, first.IsPersonalBest)
	assert.True(t, first.IsClubRecord)

	list, err := ps.ListPerformancesForClub(f.club.ID, stor.PerformanceFilter{AthleteID: f.athlete.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, faster.ID, list[0].ID)
}

func TestGormPerformanceMovedToOtherKind(t *testing.T) {
	f := newPerformanceFixture(t)
	ps := f.stors.PerformanceStor
	day := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	longJump, err := f.stors.DisciplineStor.CreateDiscipline(&clubmodel.Discipline{
		SeasonID: f.discipline.SeasonID, Name: "Long Jump", IsMeasured: true,
	})
	require.NoError(t, err)

	best, err := ps.CreatePerformance(f.performance(day, 11.0), discipline.Timed)
	require.NoError(t, err)

	moved, err := ps.CreatePerformance(f.performance(day.AddDate(0, 0, 1), 12.0), discipline.Timed)
	require.NoError(t, err)

	moved.DisciplineID = longJump.ID
	moved.TimeSeconds = nil
	moved.DistanceMeters = floatPtr(6.5)
	moved, err = ps.UpdatePerformance(moved, discipline.Measured)
	require.NoError(t, err)
	assert.True(t, moved.IsPersonalBest)
	assert.True(t, moved.IsClubRecord)

	// the sprint group keeps its flags
	best, err = ps.GetPerformanceByID(best.ID)
	require.NoError(t, err)
	assert.True(t, best.IsPersonalBest)
	assert.True(t, best.IsClubRecord)
}

func TestGormPerformanceMedalOnlyHasNoFlags(t *testing.T) {
	f := newPerformanceFixture(t)
	medals, err := f.stors.CatalogStor.ListMedals()
	require.NoError(t, err)

	p := f.performance(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), 0)
	p.TimeSeconds = nil
	p.MedalID = &medals[0].ID
	require.NoError(t, p.SetTeamMembers(nil))

	p, err = f.stors.PerformanceStor.CreatePerformance(p, discipline.Timed)
	require.NoError(t, err)
	assert.False(t, p.IsPersonalBest)
	assert.False(t, p.IsClubRecord)
}

func TestGormProofUploadStor(t *testing.T) {
	stors := stor.NewGormStors(tutil.OpenTestDB(t))

	_, err := stors.ProofUploadStor.CreateProofUpload(&clubmodel.ProofUpload{ID: "abc123", ClubID: "c1", UploaderID: "u1", Filename: "result.pdf", Size: 42})
	require.NoError(t, err)

	upload, err := stors.ProofUploadStor.GetProofUploadByID("abc123")
	require.NoError(t, err)
	assert.Equal(t, "result.pdf", upload.Filename)

	_, err = stors.ProofUploadStor.GetProofUploadByID("nope")
	assert.ErrorIs(t, err, stor.ErrNotFound)
}
