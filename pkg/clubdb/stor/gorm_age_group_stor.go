package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormAgeGroupStor struct {
	db *gorm.DB
}

func NewGormAgeGroupStor(db *gorm.DB) *GormAgeGroupStor {
	return &GormAgeGroupStor{db: db}
}

// CreateAgeGroup returns ErrDuplicate if the club already has an age group with
// the same name.
func (s *GormAgeGroupStor) CreateAgeGroup(ageGroup *clubmodel.AgeGroup) (*clubmodel.AgeGroup, error) {
	var err error

	if ageGroup.ID, err = newID(); err != nil {
		return nil, err
	}

	ageGroup.Name = strings.TrimSpace(ageGroup.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&clubmodel.AgeGroup{}).
			Where("club_id = ? AND name = ?", ageGroup.ClubID, ageGroup.Name).
			Count(&count).Error
		switch {
		case err != nil:
			return err
		case count != 0:
			return ErrDuplicate
		}

		return tx.Create(ageGroup).Error
	})

	if err != nil {
		return nil, translate(err, "create age group %s", ageGroup.Name)
	}

	return ageGroup, nil
}

func (s *GormAgeGroupStor) GetAgeGroupByID(ageGroupID string) (*clubmodel.AgeGroup, error) {
	var ageGroup clubmodel.AgeGroup
	if err := s.db.Where("id = ?", ageGroupID).First(&ageGroup).Error; err != nil {
		return nil, translate(err, "age group %s", ageGroupID)
	}

	return &ageGroup, nil
}

func (s *GormAgeGroupStor) ListAgeGroupsForClub(clubID string) ([]clubmodel.AgeGroup, error) {
	var ageGroups []clubmodel.AgeGroup
	err := s.db.Where("club_id = ?", clubID).Order("ordinal").Order("name").Find(&ageGroups).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list age groups for club %s", clubID)
	}

	return ageGroups, nil
}
