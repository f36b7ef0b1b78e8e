package stor_test

import (
	"testing"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryMembershipStor(t *testing.T) {
	s := stor.NewInMemoryMembershipStor(
		[]clubmodel.Club{{ID: "c1", Name: "One", Active: true}, {ID: "c2", Name: "Two", Active: true}},
		[]clubmodel.UserClub{
			{ID: "m1", UserID: "u1", ClubID: "c1", Role: clubmodel.RoleAdmin, Active: true},
			{ID: "m2", UserID: "u1", ClubID: "c2", Role: clubmodel.RoleMember, Active: false},
		},
	)

	m, err := s.GetMembership("u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, m.Club)
	assert.Equal(t, "One", m.Club.Name)

	_, err = s.GetMembership("u2", "c1")
	assert.ErrorIs(t, err, stor.ErrNotFound)

	active, err := s.GetActiveMembershipsForUser("u1")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = s.SetMembership("u1", "c2", clubmodel.RoleCoach, true)
	require.NoError(t, err)
	s.SetClubActive("c1", false)

	active, err = s.GetActiveMembershipsForUser("u1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "c2", active[0].ClubID)
}

func TestInMemoryPerformanceStor(t *testing.T) {
	s := stor.NewInMemoryPerformanceStor(nil)
	date := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)

	p := &clubmodel.Performance{ClubID: "c1", AthleteID: "a1", DisciplineID: "d1", AgeGroupID: "ag", GenderID: "g", Date: date, DistanceMeters: floatPtr(5.5)}
	p, err := s.CreatePerformance(p, discipline.Measured)
	require.NoError(t, err)
	assert.True(t, p.IsPersonalBest)

	dup, err := s.IsDuplicate(p.DuplicateKey(), "")
	require.NoError(t, err)
	assert.True(t, dup)

	again := *p
	_, err = s.CreatePerformance(&again, discipline.Measured)
	assert.ErrorIs(t, err, stor.ErrDuplicate)

	longer := &clubmodel.Performance{ClubID: "c1", AthleteID: "a1", DisciplineID: "d1", AgeGroupID: "ag", GenderID: "g", Date: date.AddDate(0, 0, 1), DistanceMeters: floatPtr(5.9)}
	longer, err = s.CreatePerformance(longer, discipline.Measured)
	require.NoError(t, err)
	assert.True(t, longer.IsPersonalBest)
	assert.True(t, longer.IsClubRecord)

	list, err := s.ListPerformancesForClub("c1", stor.PerformanceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, longer.ID, list[0].ID)
}
