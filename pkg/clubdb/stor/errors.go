package stor

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// translate maps gorm errors onto the store sentinels, adding what was being
// looked up or written. Other errors pass through with the same context.
func translate(err error, format string, args ...interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrapf(ErrNotFound, format, args...)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Wrapf(ErrDuplicate, format, args...)
	default:
		return errors.Wrapf(err, format, args...)
	}
}

// isPermanent reports errors that a retried transaction would only repeat.
func isPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}
