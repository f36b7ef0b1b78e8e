package discipline

// Kind says how a discipline's marks are recorded. The zero value is not a valid
// Kind; use KindOf to obtain one from the stored flags.
type Kind int

const (
	Timed Kind = iota + 1
	Measured
)

// KindOf converts the persisted flag pair, rejecting the two illegal combinations.
func KindOf(isTimed, isMeasured bool) (Kind, error) {
	if err := ValidateTypeExclusivity(isTimed, isMeasured); err != nil {
		return 0, err
	}

	if isTimed {
		return Timed, nil
	}

	return Measured, nil
}

func (k Kind) SmallerIsBetter() bool {
	return k == Timed
}

// Flags returns the (isTimed, isMeasured) pair to persist for k.
func (k Kind) Flags() (isTimed, isMeasured bool) {
	return k == Timed, k == Measured
}

func (k Kind) String() string {
	switch k {
	case Timed:
		return "timed"
	case Measured:
		return "measured"
	default:
		return "unknown"
	}
}

// Format is the complete shape of a discipline: its kind and, for team events, the
// number of athletes per entry. A zero TeamSize means an individual event.
type Format struct {
	Kind     Kind
	TeamSize int
}

func NewFormat(isTimed, isMeasured bool, teamSize *int) (Format, error) {
	kind, err := KindOf(isTimed, isMeasured)
	if err != nil {
		return Format{}, err
	}

	if err := ValidateTeamSize(teamSize); err != nil {
		return Format{}, err
	}

	f := Format{Kind: kind}
	if teamSize != nil {
		f.TeamSize = *teamSize
	}

	return f, nil
}

func (f Format) IsTeam() bool {
	return f.TeamSize > 0
}
