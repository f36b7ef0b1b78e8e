package stor

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormCatalogStor struct {
	db *gorm.DB
}

func NewGormCatalogStor(db *gorm.DB) *GormCatalogStor {
	return &GormCatalogStor{db: db}
}

func (s *GormCatalogStor) ListGenders() ([]clubmodel.Gender, error) {
	var genders []clubmodel.Gender
	if err := s.db.Order("name").Find(&genders).Error; err != nil {
		return nil, errors.Wrap(err, "list genders")
	}

	return genders, nil
}

func (s *GormCatalogStor) GetGenderByID(genderID string) (*clubmodel.Gender, error) {
	var gender clubmodel.Gender
	if err := s.db.Where("id = ?", genderID).First(&gender).Error; err != nil {
		return nil, translate(err, "gender %s", genderID)
	}

	return &gender, nil
}

func (s *GormCatalogStor) ListMedals() ([]clubmodel.Medal, error) {
	var medals []clubmodel.Medal
	if err := s.db.Order("position").Find(&medals).Error; err != nil {
		return nil, errors.Wrap(err, "list medals")
	}

	return medals, nil
}

func (s *GormCatalogStor) GetMedalByID(medalID string) (*clubmodel.Medal, error) {
	var medal clubmodel.Medal
	if err := s.db.Where("id = ?", medalID).First(&medal).Error; err != nil {
		return nil, translate(err, "medal %s", medalID)
	}

	return &medal, nil
}
