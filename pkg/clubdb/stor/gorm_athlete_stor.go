package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultSearchLimit = 25

type GormAthleteStor struct {
	db *gorm.DB
}

func NewGormAthleteStor(db *gorm.DB) *GormAthleteStor {
	return &GormAthleteStor{db: db}
}

func (s *GormAthleteStor) CreateAthlete(athlete *clubmodel.Athlete) (*clubmodel.Athlete, error) {
	var err error

	if athlete.ID, err = newID(); err != nil {
		return nil, err
	}

	athlete.FirstName = strings.TrimSpace(athlete.FirstName)
	athlete.LastName = strings.TrimSpace(athlete.LastName)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(athlete).Error
	})

	if err != nil {
		return nil, translate(err, "create athlete %s", athlete.FullName())
	}

	return athlete, nil
}

func (s *GormAthleteStor) GetAthleteByID(athleteID string) (*clubmodel.Athlete, error) {
	var athlete clubmodel.Athlete
	err := s.db.Preload("Gender").Preload("AgeGroup").Where("id = ?", athleteID).First(&athlete).Error
	if err != nil {
		return nil, translate(err, "athlete %s", athleteID)
	}

	return &athlete, nil
}

// SearchAthletes matches every whitespace separated term of query against the
// first or last name, case insensitively. An empty query lists the club.
func (s *GormAthleteStor) SearchAthletes(clubID, query string, limit int) ([]clubmodel.Athlete, error) {
	var athletes []clubmodel.Athlete

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	q := s.db.Preload("Gender").Preload("AgeGroup").Where("club_id = ?", clubID)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		like := "%" + term + "%"
		q = q.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", like, like)
	}

	err := q.Order("last_name").Order("first_name").Limit(limit).Find(&athletes).Error
	if err != nil {
		return nil, errors.Wrapf(err, "search athletes in club %s", clubID)
	}

	return athletes, nil
}

// CountAthletesInClub counts how many of athleteIDs belong to clubID.
func (s *GormAthleteStor) CountAthletesInClub(clubID string, athleteIDs []string) (int, error) {
	var count int64

	if len(athleteIDs) == 0 {
		return 0, nil
	}

	err := s.db.Model(&clubmodel.Athlete{}).
		Where("club_id = ? AND id IN ?", clubID, athleteIDs).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrapf(err, "count athletes in club %s", clubID)
	}

	return int(count), nil
}
