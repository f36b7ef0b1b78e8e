package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user. The email is stored lower cased; user.Password
// must already be hashed.
func (s *GormUserStor) CreateUser(user *clubmodel.User) (*clubmodel.User, error) {
	var err error

	if user.ID, err = newID(); err != nil {
		return nil, err
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})

	if err != nil {
		return nil, translate(err, "create user %s", user.Email)
	}

	return user, nil
}

func (s *GormUserStor) GetUserByID(userID string) (*clubmodel.User, error) {
	var user clubmodel.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, translate(err, "user %s", userID)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByEmail(email string) (*clubmodel.User, error) {
	var user clubmodel.User
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user %s", email)
	}

	return &user, nil
}
