package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormDisciplineStor struct {
	db *gorm.DB
}

func NewGormDisciplineStor(db *gorm.DB) *GormDisciplineStor {
	return &GormDisciplineStor{db: db}
}

// CreateDiscipline stores d as given. Callers run the discipline rules first;
// the only check here is that the season exists.
func (s *GormDisciplineStor) CreateDiscipline(d *clubmodel.Discipline) (*clubmodel.Discipline, error) {
	var err error

	if d.ID, err = newID(); err != nil {
		return nil, err
	}

	d.Name = strings.TrimSpace(d.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		var season clubmodel.Season
		if err := tx.Where("id = ?", d.SeasonID).First(&season).Error; err != nil {
			return err
		}

		if err := tx.Create(d).Error; err != nil {
			return err
		}

		d.Season = &season
		return nil
	})

	if err != nil {
		return nil, translate(err, "create discipline %s in season %s", d.Name, d.SeasonID)
	}

	return d, nil
}

func (s *GormDisciplineStor) GetDisciplineByID(disciplineID string) (*clubmodel.Discipline, error) {
	var d clubmodel.Discipline
	if err := s.db.Preload("Season").Where("id = ?", disciplineID).First(&d).Error; err != nil {
		return nil, translate(err, "discipline %s", disciplineID)
	}

	return &d, nil
}

// ListDisciplines lists the disciplines of a season, or of all seasons when
// seasonID is empty.
func (s *GormDisciplineStor) ListDisciplines(seasonID string) ([]clubmodel.Discipline, error) {
	var disciplines []clubmodel.Discipline

	q := s.db.Preload("Season").Order("name")
	if seasonID != "" {
		q = q.Where("season_id = ?", seasonID)
	}

	if err := q.Find(&disciplines).Error; err != nil {
		return nil, errors.Wrap(err, "list disciplines")
	}

	return disciplines, nil
}
