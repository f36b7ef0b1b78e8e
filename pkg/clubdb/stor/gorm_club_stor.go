package stor

import (
	"fmt"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GormClubStor struct {
	db *gorm.DB
}

func NewGormClubStor(db *gorm.DB) *GormClubStor {
	return &GormClubStor{db: db}
}

// CreateClub creates an active club and makes ownerID its OWNER. The slug comes
// from the name; on a collision an increasing number is appended.
func (s *GormClubStor) CreateClub(club *clubmodel.Club, ownerID string) (*clubmodel.Club, error) {
	var (
		err          error
		membershipID string
	)

	if club.ID, err = newID(); err != nil {
		return nil, err
	}

	if membershipID, err = newID(); err != nil {
		return nil, err
	}

	club.Active = true
	slugOfName := slug.Make(club.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		club.Slug = slugOfName
		for slugNext := 1; ; slugNext++ {
			var count int64
			if err := tx.Model(&clubmodel.Club{}).Where("slug = ?", club.Slug).Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				break
			}

			club.Slug = fmt.Sprintf("%s-%d", slugOfName, slugNext)
		}

		if err := tx.Create(club).Error; err != nil {
			return err
		}

		owner := &clubmodel.UserClub{
			ID:     membershipID,
			UserID: ownerID,
			ClubID: club.ID,
			Role:   clubmodel.RoleOwner,
			Active: true,
		}

		return tx.Create(owner).Error
	})

	if err != nil {
		return nil, translate(err, "create club %s", club.Name)
	}

	return club, nil
}

func (s *GormClubStor) GetClubByID(clubID string) (*clubmodel.Club, error) {
	var club clubmodel.Club
	if err := s.db.Where("id = ?", clubID).First(&club).Error; err != nil {
		return nil, translate(err, "club %s", clubID)
	}

	return &club, nil
}

// DeactivateClub turns off a club. Clubs are never removed.
func (s *GormClubStor) DeactivateClub(clubID string) (*clubmodel.Club, error) {
	var club clubmodel.Club

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", clubID).First(&club).Error; err != nil {
			return err
		}

		return tx.Model(&club).Update("active", false).Error
	})

	if err != nil {
		return nil, translate(err, "deactivate club %s", clubID)
	}

	return &club, nil
}
