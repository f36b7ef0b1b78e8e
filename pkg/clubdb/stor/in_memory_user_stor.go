package stor

import (
	"strings"
	"sync"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
)

type InMemoryUserStor struct {
	mu    sync.Mutex
	users []clubmodel.User
}

func NewInMemoryUserStor(users []clubmodel.User) *InMemoryUserStor {
	return &InMemoryUserStor{users: users}
}

func (s *InMemoryUserStor) CreateUser(user *clubmodel.User) (*clubmodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, errors.Wrapf(ErrDuplicate, "create user %s", user.Email)
		}
	}

	var err error
	if user.ID, err = newID(); err != nil {
		return nil, err
	}

	s.users = append(s.users, *user)
	return user, nil
}

func (s *InMemoryUserStor) GetUserByID(userID string) (*clubmodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == userID {
			found := u
			return &found, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "user %s", userID)
}

func (s *InMemoryUserStor) GetUserByEmail(email string) (*clubmodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}

	return nil, errors.Wrapf(ErrNotFound, "user %s", email)
}
