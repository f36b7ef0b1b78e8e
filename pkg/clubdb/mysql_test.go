package clubdb_test

import (
	"testing"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/tutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAgainstConfiguredDB(t *testing.T) {
	tutil.SkipUnlessIntegration(t)

	db := clubdb.MustConnectToDB()
	require.NoError(t, clubdb.Migrate(db))
	require.NoError(t, clubdb.SeedCatalogs(db))

	var count int64
	require.NoError(t, db.Model(&clubmodel.Medal{}).Count(&count).Error)
	assert.Equal(t, int64(12), count)
}
