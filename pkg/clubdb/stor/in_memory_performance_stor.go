package stor

import (
	"sort"
	"sync"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/performance"
	"github.com/pkg/errors"
)

// InMemoryPerformanceStor applies the duplicate rule over a slice instead of a
// query. Record flags are computed only for the stored performance.
type InMemoryPerformanceStor struct {
	mu           sync.Mutex
	performances []clubmodel.Performance
}

func NewInMemoryPerformanceStor(performances []clubmodel.Performance) *InMemoryPerformanceStor {
	return &InMemoryPerformanceStor{performances: performances}
}

func (s *InMemoryPerformanceStor) records() []performance.Record {
	records := make([]performance.Record, 0, len(s.performances))
	for _, p := range s.performances {
		records = append(records, performance.Record{ID: p.ID, Key: p.DuplicateKey()})
	}

	return records
}

func (s *InMemoryPerformanceStor) setFlags(p *clubmodel.Performance, kind discipline.Kind) {
	mark, ok := performance.Mark(kind, p.TimeSeconds, p.DistanceMeters)
	if !ok {
		p.IsPersonalBest, p.IsClubRecord = false, false
		return
	}

	var personal, club []float64
	for _, other := range s.performances {
		if other.ID == p.ID || other.DisciplineID != p.DisciplineID {
			continue
		}

		m, ok := performance.Mark(kind, other.TimeSeconds, other.DistanceMeters)
		if !ok {
			continue
		}

		if other.AthleteID == p.AthleteID {
			personal = append(personal, m)
		}

		if other.ClubID == p.ClubID && other.AgeGroupID == p.AgeGroupID && other.GenderID == p.GenderID {
			club = append(club, m)
		}
	}

	p.IsPersonalBest = performance.IsBestOf(kind, mark, personal)
	p.IsClubRecord = performance.IsBestOf(kind, mark, club)
}

func (s *InMemoryPerformanceStor) CreatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalizePerformance(p)
	if performance.IsDuplicate(s.records(), p.DuplicateKey(), "") {
		return nil, errors.Wrapf(ErrDuplicate, "create performance for athlete %s", p.AthleteID)
	}

	var err error
	if p.ID, err = newID(); err != nil {
		return nil, err
	}

	s.setFlags(p, kind)
	s.performances = append(s.performances, *p)
	return p, nil
}

func (s *InMemoryPerformanceStor) UpdatePerformance(p *clubmodel.Performance, kind discipline.Kind) (*clubmodel.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalizePerformance(p)
	for i := range s.performances {
		if s.performances[i].ID != p.ID {
			continue
		}

		if performance.IsDuplicate(s.records(), p.DuplicateKey(), p.ID) {
			return nil, errors.Wrapf(ErrDuplicate, "update performance %s", p.ID)
		}

		p.ClubID = s.performances[i].ClubID
		p.CreatedByID = s.performances[i].CreatedByID
		s.setFlags(p, kind)
		s.performances[i] = *p
		return p, nil
	}

	return nil, errors.Wrapf(ErrNotFound, "performance %s", p.ID)
}

func (s *InMemoryPerformanceStor) GetPerformanceByID(performanceID string) (*clubmodel.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.performances {
		if p.ID == performanceID {
			found := p
			return &found, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "performance %s", performanceID)
}

func (s *InMemoryPerformanceStor) ListPerformancesForClub(clubID string, filter PerformanceFilter) ([]clubmodel.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var performances []clubmodel.Performance
	for _, p := range s.performances {
		switch {
		case p.ClubID != clubID:
		case filter.AthleteID != "" && p.AthleteID != filter.AthleteID:
		case filter.DisciplineID != "" && p.DisciplineID != filter.DisciplineID:
		default:
			performances = append(performances, p)
		}
	}

	sort.SliceStable(performances, func(i, j int) bool {
		return performances[i].Date.After(performances[j].Date)
	})

	if filter.Limit > 0 && len(performances) > filter.Limit {
		performances = performances[:filter.Limit]
	}

	return performances, nil
}

func (s *InMemoryPerformanceStor) IsDuplicate(key performance.Key, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key.Date = key.Date.UTC()
	return performance.IsDuplicate(s.records(), key, excludeID), nil
}
