package stor

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/config"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

// WithTxRetry runs fn in a transaction, retrying failed attempts up to the
// configured count. Not found and constraint errors are returned at once.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := config.GetTxRetry()

	if retryCount < 3 {
		retryCount = 3
	}

	for i := 0; i < retryCount; i++ {
		err = db.Transaction(fn)
		if err == nil || isPermanent(err) {
			break
		}
	}

	return err
}

func newID() (string, error) {
	return uuid.GenerateUUID()
}
