package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormSeasonStor struct {
	db *gorm.DB
}

func NewGormSeasonStor(db *gorm.DB) *GormSeasonStor {
	return &GormSeasonStor{db: db}
}

func seasonNameTaken(tx *gorm.DB, name, excludeID string) (bool, error) {
	var count int64
	q := tx.Model(&clubmodel.Season{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count != 0, nil
}

// CreateSeason returns ErrDuplicate when a season with the same name exists.
func (s *GormSeasonStor) CreateSeason(season *clubmodel.Season) (*clubmodel.Season, error) {
	var err error

	if season.ID, err = newID(); err != nil {
		return nil, err
	}

	season.Name = strings.TrimSpace(season.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		taken, err := seasonNameTaken(tx, season.Name, "")
		switch {
		case err != nil:
			return err
		case taken:
			return ErrDuplicate
		}

		return tx.Create(season).Error
	})

	if err != nil {
		return nil, translate(err, "create season %s", season.Name)
	}

	return season, nil
}

func (s *GormSeasonStor) UpdateSeason(seasonID, name string) (*clubmodel.Season, error) {
	var season clubmodel.Season
	name = strings.TrimSpace(name)

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", seasonID).First(&season).Error; err != nil {
			return err
		}

		taken, err := seasonNameTaken(tx, name, seasonID)
		switch {
		case err != nil:
			return err
		case taken:
			return ErrDuplicate
		}

		return tx.Model(&season).Update("name", name).Error
	})

	if err != nil {
		return nil, translate(err, "update season %s", seasonID)
	}

	return &season, nil
}

func (s *GormSeasonStor) GetSeasonByID(seasonID string) (*clubmodel.Season, error) {
	var season clubmodel.Season
	if err := s.db.Where("id = ?", seasonID).First(&season).Error; err != nil {
		return nil, translate(err, "season %s", seasonID)
	}

	return &season, nil
}

func (s *GormSeasonStor) ListSeasons() ([]clubmodel.Season, error) {
	var seasons []clubmodel.Season
	if err := s.db.Order("name").Find(&seasons).Error; err != nil {
		return nil, errors.Wrap(err, "list seasons")
	}

	return seasons, nil
}
