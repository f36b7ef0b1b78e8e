package performance

import (
	"fmt"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
)

var (
	ErrTeamMembersNotAllowed = rules.NewViolation("teamMembers", "Team members are not allowed for individual disciplines")
	ErrTeamMembersNotUnique  = rules.NewViolation("teamMembers", "Team members must be unique")
	ErrTeamMemberBlank       = rules.NewViolation("teamMembers", "Team member ids cannot be blank")
)

type TeamResult struct {
	IsValid          bool              `json:"isValid"`
	RequiredTeamSize int               `json:"requiredTeamSize"`
	ProvidedTeamSize int               `json:"providedTeamSize"`
	Errors           []rules.Violation `json:"errors"`
}

// ValidateTeam checks the submitted team member athlete ids against the
// discipline's team size. A nil or zero team size is an individual event.
func ValidateTeam(teamSize *int, members []string) TeamResult {
	res := TeamResult{ProvidedTeamSize: len(members), Errors: []rules.Violation{}}
	if teamSize != nil {
		res.RequiredTeamSize = *teamSize
	}

	if res.RequiredTeamSize <= 0 {
		if len(members) > 0 {
			res.Errors = append(res.Errors, *ErrTeamMembersNotAllowed)
		}
		res.IsValid = len(res.Errors) == 0
		return res
	}

	switch {
	case len(members) == 0:
		res.Errors = append(res.Errors, *rules.NewViolation("teamMembers",
			fmt.Sprintf("Team members are required for a team discipline of %d", res.RequiredTeamSize)))
	case len(members) != res.RequiredTeamSize:
		res.Errors = append(res.Errors, *rules.NewViolation("teamMembers",
			fmt.Sprintf("Team discipline requires exactly %d team members, got %d", res.RequiredTeamSize, len(members))))
	}

	seen := make(map[string]struct{}, len(members))
	blank := false
	for _, m := range members {
		if strings.TrimSpace(m) == "" {
			blank = true
		}
		seen[m] = struct{}{}
	}

	if blank {
		res.Errors = append(res.Errors, *ErrTeamMemberBlank)
	}

	if len(seen) != len(members) {
		res.Errors = append(res.Errors, *ErrTeamMembersNotUnique)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
