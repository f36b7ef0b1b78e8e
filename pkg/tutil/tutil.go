// Package tutil holds helpers shared by the package tests.
package tutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IsIntegrationTest reports whether CLUB_TEST=integration is set. Integration
// tests run against the MySQL database described by the DB_* keys.
func IsIntegrationTest() bool {
	testType := os.Getenv("CLUB_TEST")
	return strings.ToLower(testType) == "integration"
}

func SkipUnlessIntegration(t *testing.T) {
	t.Helper()
	if !IsIntegrationTest() {
		t.Skip("set CLUB_TEST=integration to run")
	}
}

// OpenTestDB opens a private in-memory sqlite database with the schema and
// catalogs in place.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name, err := uuid.GenerateUUID()
	require.NoError(t, err)

	db, err := clubdb.OpenSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection avoids table locks in shared cache mode.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, clubdb.Migrate(db))
	require.NoError(t, clubdb.SeedCatalogs(db))

	return db
}

// CreateUser adds a user whose password is "password".
func CreateUser(t *testing.T, stors *stor.Stors, email string, isAdmin bool) *clubmodel.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := stors.UserStor.CreateUser(&clubmodel.User{Email: email, Name: email, Password: string(hash), IsAdmin: isAdmin})
	require.NoError(t, err)
	return user
}

// CreateClub creates a club owned by owner.
func CreateClub(t *testing.T, stors *stor.Stors, name string, owner *clubmodel.User) *clubmodel.Club {
	t.Helper()

	club, err := stors.ClubStor.CreateClub(&clubmodel.Club{Name: name}, owner.ID)
	require.NoError(t, err)
	return club
}

// AddMember creates a user with the given role in club.
func AddMember(t *testing.T, stors *stor.Stors, club *clubmodel.Club, email, role string) *clubmodel.User {
	t.Helper()

	user := CreateUser(t, stors, email, false)
	_, err := stors.MembershipStor.SetMembership(user.ID, club.ID, role, true)
	require.NoError(t, err)
	return user
}

func GenderByName(t *testing.T, stors *stor.Stors, name string) clubmodel.Gender {
	t.Helper()

	genders, err := stors.CatalogStor.ListGenders()
	require.NoError(t, err)
	for _, g := range genders {
		if g.Name == name {
			return g
		}
	}

	t.Fatalf("no gender %s", name)
	return clubmodel.Gender{}
}
