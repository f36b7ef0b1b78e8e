package stor

import (
	"sync"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
)

// InMemoryMembershipStor keeps memberships and clubs in memory for tests of the
// club gate and handlers that only need membership lookups.
type InMemoryMembershipStor struct {
	mu          sync.Mutex
	clubs       map[string]clubmodel.Club
	memberships []clubmodel.UserClub
}

func NewInMemoryMembershipStor(clubs []clubmodel.Club, memberships []clubmodel.UserClub) *InMemoryMembershipStor {
	s := &InMemoryMembershipStor{clubs: make(map[string]clubmodel.Club)}
	for _, c := range clubs {
		s.clubs[c.ID] = c
	}

	s.memberships = append(s.memberships, memberships...)
	return s
}

func (s *InMemoryMembershipStor) withClub(uc clubmodel.UserClub) clubmodel.UserClub {
	if c, ok := s.clubs[uc.ClubID]; ok {
		uc.Club = &c
	}

	return uc
}

func (s *InMemoryMembershipStor) GetMembership(userID, clubID string) (*clubmodel.UserClub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, uc := range s.memberships {
		if uc.UserID == userID && uc.ClubID == clubID {
			found := s.withClub(uc)
			return &found, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "membership of user %s in club %s", userID, clubID)
}

func (s *InMemoryMembershipStor) GetActiveMembershipsForUser(userID string) ([]clubmodel.UserClub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var memberships []clubmodel.UserClub
	for _, uc := range s.memberships {
		if uc.UserID != userID || !uc.Active {
			continue
		}

		if c, ok := s.clubs[uc.ClubID]; ok && c.Active {
			memberships = append(memberships, s.withClub(uc))
		}
	}

	return memberships, nil
}

func (s *InMemoryMembershipStor) GetMembersOfClub(clubID string) ([]clubmodel.UserClub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var memberships []clubmodel.UserClub
	for _, uc := range s.memberships {
		if uc.ClubID == clubID {
			memberships = append(memberships, uc)
		}
	}

	return memberships, nil
}

func (s *InMemoryMembershipStor) SetMembership(userID, clubID, role string, active bool) (*clubmodel.UserClub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.memberships {
		if s.memberships[i].UserID == userID && s.memberships[i].ClubID == clubID {
			s.memberships[i].Role = role
			s.memberships[i].Active = active
			uc := s.memberships[i]
			return &uc, nil
		}
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}

	uc := clubmodel.UserClub{ID: id, UserID: userID, ClubID: clubID, Role: role, Active: active}
	s.memberships = append(s.memberships, uc)
	return &uc, nil
}

// SetClubActive flips a club's active flag.
func (s *InMemoryMembershipStor) SetClubActive(clubID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clubs[clubID]; ok {
		c.Active = active
		s.clubs[clubID] = c
	}
}
