package clubauth

import (
	"fmt"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
)

// Role is a club membership role. Roles are ordered: each role can do what the
// roles below it can.
type Role string

const (
	Owner  Role = clubmodel.RoleOwner
	Admin  Role = clubmodel.RoleAdmin
	Coach  Role = clubmodel.RoleCoach
	Member Role = clubmodel.RoleMember
)

var roleRank = map[Role]int{
	Member: 1,
	Coach:  2,
	Admin:  3,
	Owner:  4,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}

	return r, nil
}

// Meets reports whether r is min or above. Unknown roles meet nothing.
func (r Role) Meets(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}

	return rank >= roleRank[min]
}

func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
