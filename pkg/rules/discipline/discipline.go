// Package discipline validates the shape of a discipline and derives how its marks
// compare. A discipline is either timed (smaller is better) or measured (larger is
// better), never both, and is either an individual event or a team event of 1 to 10.
package discipline

import (
	"strings"
	"unicode/utf8"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules"
)

const (
	MaxNameLength       = 128
	MaxSeasonNameLength = 64
	MinTeamSize         = 1
	MaxTeamSize         = 10
)

var (
	ErrTypeConflict     = rules.NewViolation("isTimed", "A discipline cannot be both timed and measured")
	ErrTypeMissing      = rules.NewViolation("isTimed", "A discipline must be either timed or measured")
	ErrTeamSizeTooSmall = rules.NewViolation("teamSize", "Team size must be at least 1")
	ErrTeamSizeTooLarge = rules.NewViolation("teamSize", "Team size cannot exceed 10")
	ErrSeasonIDRequired = rules.NewViolation("seasonId", "Season is required")
	ErrNameRequired     = rules.NewViolation("name", "Name is required")
	ErrNameTooLong      = rules.NewViolation("name", "Name must be 128 characters or less")

	ErrSeasonNameRequired = rules.NewViolation("name", "Season name is required")
	ErrSeasonNameTooLong  = rules.NewViolation("name", "Season name must be 64 characters or less")
)

// Input is a discipline as submitted for creation.
type Input struct {
	SeasonID   string
	Name       string
	IsTimed    bool
	IsMeasured bool
	TeamSize   *int
}

// Prepared is a validated Input with its comparison direction attached.
type Prepared struct {
	Input
	IsSmallerBetter bool
}

type SeasonInput struct {
	Name string
}

func ValidateTypeExclusivity(isTimed, isMeasured bool) error {
	switch {
	case isTimed && isMeasured:
		return ErrTypeConflict
	case !isTimed && !isMeasured:
		return ErrTypeMissing
	default:
		return nil
	}
}

// ValidateTeamSize accepts a nil team size, which marks an individual event.
func ValidateTeamSize(teamSize *int) error {
	switch {
	case teamSize == nil:
		return nil
	case *teamSize < MinTeamSize:
		return ErrTeamSizeTooSmall
	case *teamSize > MaxTeamSize:
		return ErrTeamSizeTooLarge
	default:
		return nil
	}
}

// ComparisonDirection reports whether a smaller mark wins.
func ComparisonDirection(isTimed, isMeasured bool) (bool, error) {
	kind, err := KindOf(isTimed, isMeasured)
	if err != nil {
		return false, err
	}

	return kind.SmallerIsBetter(), nil
}

// ValidateInput returns the first failure found, checking the season, the name, the
// type flags and the team size in that order.
func ValidateInput(input Input) error {
	if strings.TrimSpace(input.SeasonID) == "" {
		return ErrSeasonIDRequired
	}

	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}

	if utf8.RuneCountInString(input.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if err := ValidateTypeExclusivity(input.IsTimed, input.IsMeasured); err != nil {
		return err
	}

	return ValidateTeamSize(input.TeamSize)
}

func PrepareForCreation(input Input) (Prepared, error) {
	if err := ValidateInput(input); err != nil {
		return Prepared{}, err
	}

	smallerIsBetter, err := ComparisonDirection(input.IsTimed, input.IsMeasured)
	if err != nil {
		return Prepared{}, err
	}

	return Prepared{Input: input, IsSmallerBetter: smallerIsBetter}, nil
}

func ValidateSeasonInput(input SeasonInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrSeasonNameRequired
	}

	if utf8.RuneCountInString(input.Name) > MaxSeasonNameLength {
		return ErrSeasonNameTooLong
	}

	return nil
}
