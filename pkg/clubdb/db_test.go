package clubdb

import (
	"fmt"
	"testing"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/hashicorp/go-uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAndSeedCatalogs(t *testing.T) {
	name, err := uuid.GenerateUUID()
	require.NoError(t, err)

	db, err := OpenSqlite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, SeedCatalogs(db))
	// A second run must not add rows.
	require.NoError(t, SeedCatalogs(db))

	var medals []clubmodel.Medal
	require.NoError(t, db.Order("position").Find(&medals).Error)
	require.Len(t, medals, 12)
	assert.Equal(t, "Gold", medals[0].Name)
	assert.Equal(t, "Silver", medals[1].Name)
	assert.Equal(t, "Bronze", medals[11].Name)

	var genders []clubmodel.Gender
	require.NoError(t, db.Find(&genders).Error)
	assert.Len(t, genders, 3)
}
