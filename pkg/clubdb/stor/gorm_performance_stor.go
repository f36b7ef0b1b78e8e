package stor

import (
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/performance"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultPerformanceLimit = 100

type GormPerformanceStor struct {
	db *gorm.DB
}

func NewGormPerformanceStor(db *gorm.DB) *GormPerformanceStor {
	return &GormPerformanceStor{db: db}
}

func normalizePerformance(p *clubmodel.Performance) {
	p.Date = p.Date.UTC()
	p.EventDetails = strings.TrimSpace(p.EventDetails)
}

// CreatePerformance inserts p and refreshes the personal best and club record
// flags of the groups it belongs to. A concurrent insert of the same result
// fails on the unique index and comes back as ErrDuplicate.
func (s *GormPerformanceStor) CreatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error) {
	var err error

	if p.ID, err = newID(); err != nil {
		return nil, err
	}

	normalizePerformance(p)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}

		if err := refreshRecordFlags(tx, kind, *p); err != nil {
			return err
		}

		return tx.Where("id = ?", p.ID).First(p).Error
	})

	if err != nil {
		return nil, translate(err, "create performance for athlete %s", p.AthleteID)
	}

	return p, nil
}

// UpdatePerformance replaces the editable fields of an existing performance. The
// owning club, creator and creation time are kept from the stored row.
func (s *GormPerformanceStor) UpdatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error) {
	normalizePerformance(p)

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		var existing clubmodel.Performance
		if err := tx.Where("id = ?", p.ID).First(&existing).Error; err != nil {
			return err
		}

		p.ClubID = existing.ClubID
		p.CreatedByID = existing.CreatedByID
		p.CreatedAt = existing.CreatedAt

		if err := tx.Save(p).Error; err != nil {
			return err
		}

		// The update may have moved the performance out of its old groups,
		// which rank by the old discipline's kind.
		oldKind := kind
		if existing.DisciplineID != p.DisciplineID {
			var err error
			if oldKind, err = disciplineKind(tx, existing.DisciplineID); err != nil {
				return err
			}
		}

		if err := refreshRecordFlags(tx, oldKind, existing); err != nil {
			return err
		}

		if err := refreshRecordFlags(tx, kind, *p); err != nil {
			return err
		}

		return tx.Where("id = ?", p.ID).First(p).Error
	})

	if err != nil {
		return nil, translate(err, "update performance %s", p.ID)
	}

	return p, nil
}

func (s *GormPerformanceStor) GetPerformanceByID(performanceID string) (*clubmodel.Performance, error) {
	var p clubmodel.Performance
	if err := s.db.Where("id = ?", performanceID).First(&p).Error; err != nil {
		return nil, translate(err, "performance %s", performanceID)
	}

	return &p, nil
}

func (s *GormPerformanceStor) ListPerformancesForClub(clubID string, filter PerformanceFilter) ([]clubmodel.Performance, error) {
	var performances []clubmodel.Performance

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPerformanceLimit
	}

	q := s.db.Where("club_id = ?", clubID)
	if filter.AthleteID != "" {
		q = q.Where("athlete_id = ?", filter.AthleteID)
	}

	if filter.DisciplineID != "" {
		q = q.Where("discipline_id = ?", filter.DisciplineID)
	}

	if err := q.Order("date desc").Order("created_at desc").Limit(limit).Find(&performances).Error; err != nil {
		return nil, errors.Wrapf(err, "list performances for club %s", clubID)
	}

	return performances, nil
}

// IsDuplicate reports whether a performance other than excludeID has exactly
// the same key.
func (s *GormPerformanceStor) IsDuplicate(key performance.Key, excludeID string) (bool, error) {
	var count int64

	q := s.db.Model(&clubmodel.Performance{}).
		Where("athlete_id = ? AND discipline_id = ? AND age_group_id = ? AND gender_id = ?",
			key.AthleteID, key.DisciplineID, key.AgeGroupID, key.GenderID).
		Where("date = ? AND event_details = ?", key.Date.UTC(), strings.TrimSpace(key.EventDetails))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrapf(err, "duplicate check for athlete %s", key.AthleteID)
	}

	return count != 0, nil
}

func disciplineKind(tx *gorm.DB, disciplineID string) (discipline.Kind, error) {
	var d clubmodel.Discipline
	if err := tx.Where("id = ?", disciplineID).First(&d).Error; err != nil {
		return 0, err
	}

	return d.Kind()
}

// refreshRecordFlags recomputes is_personal_best over the athlete's results in
// the discipline and is_club_record over the club's results for the discipline,
// age group and gender that p belongs to.
func refreshRecordFlags(tx *gorm.DB, kind discipline.Kind, p clubmodel.Performance) error {
	personal := map[string]interface{}{
		"athlete_id":    p.AthleteID,
		"discipline_id": p.DisciplineID,
	}

	if err := refreshFlag(tx, kind, "is_personal_best", personal); err != nil {
		return err
	}

	club := map[string]interface{}{
		"club_id":       p.ClubID,
		"discipline_id": p.DisciplineID,
		"age_group_id":  p.AgeGroupID,
		"gender_id":     p.GenderID,
	}

	return refreshFlag(tx, kind, "is_club_record", club)
}

// refreshFlag sets flag on every performance in the group holding the best mark
// and clears it everywhere else. Ties share the flag.
func refreshFlag(tx *gorm.DB, kind discipline.Kind, flag string, group map[string]interface{}) error {
	var rows []clubmodel.Performance
	if err := tx.Where(group).Find(&rows).Error; err != nil {
		return err
	}

	var (
		best    float64
		hasBest bool
	)

	for _, r := range rows {
		mark, ok := performance.Mark(kind, r.TimeSeconds, r.DistanceMeters)
		if ok && (!hasBest || performance.IsBetter(kind, mark, best)) {
			best = mark
			hasBest = true
		}
	}

	var bestIDs []string
	for _, r := range rows {
		if mark, ok := performance.Mark(kind, r.TimeSeconds, r.DistanceMeters); ok && mark == best {
			bestIDs = append(bestIDs, r.ID)
		}
	}

	if err := tx.Model(&clubmodel.Performance{}).Where(group).Update(flag, false).Error; err != nil {
		return err
	}

	if len(bestIDs) == 0 {
		return nil
	}

	return tx.Model(&clubmodel.Performance{}).Where("id IN ?", bestIDs).Update(flag, true).Error
}
