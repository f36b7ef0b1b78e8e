package performance

import (
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
)

// Key is the tuple that identifies a submission. Two performances with equal keys
// are duplicates of each other.
type Key struct {
	AthleteID    string
	DisciplineID string
	AgeGroupID   string
	GenderID     string
	Date         time.Time
	EventDetails string
}

func (k Key) Equal(other Key) bool {
	return k.AthleteID == other.AthleteID &&
		k.DisciplineID == other.DisciplineID &&
		k.AgeGroupID == other.AgeGroupID &&
		k.GenderID == other.GenderID &&
		k.Date.Equal(other.Date) &&
		k.EventDetails == other.EventDetails
}

// Record is an already stored performance as seen by the duplicate check.
type Record struct {
	ID string
	Key
}

// IsDuplicate reports whether any record other than excludeID has the same key.
// Updates pass the id of the record being updated as excludeID.
func IsDuplicate(existing []Record, key Key, excludeID string) bool {
	for _, r := range existing {
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Key.Equal(key) {
			return true
		}
	}
	return false
}

// Mark picks the comparable value of a performance for its discipline kind. Medal
// only performances have no mark.
func Mark(kind discipline.Kind, timeSeconds, distanceMeters *float64) (float64, bool) {
	switch {
	case kind == discipline.Timed && timeSeconds != nil:
		return *timeSeconds, true
	case kind == discipline.Measured && distanceMeters != nil:
		return *distanceMeters, true
	default:
		return 0, false
	}
}

// IsBetter reports whether candidate beats best. Ties are not improvements.
func IsBetter(kind discipline.Kind, candidate, best float64) bool {
	if kind.SmallerIsBetter() {
		return candidate < best
	}
	return candidate > best
}

// IsBestOf reports whether mark is at least as good as every other mark. A mark
// with nothing to compare against is the best.
func IsBestOf(kind discipline.Kind, mark float64, others []float64) bool {
	for _, o := range others {
		if IsBetter(kind, o, mark) {
			return false
		}
	}
	return true
}
