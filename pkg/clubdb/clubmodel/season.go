package clubmodel

import (
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/discipline"
)

// Season groups disciplines. Seasons are shared by all clubs.
type Season struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Discipline struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	SeasonID        string    `json:"seasonId" gorm:"size:36;not null;index"`
	Season          *Season   `json:"season,omitempty" gorm:"foreignKey:SeasonID;references:ID"`
	Name            string    `json:"name" gorm:"size:128;not null"`
	IsTimed         bool      `json:"isTimed"`
	IsMeasured      bool      `json:"isMeasured"`
	IsSmallerBetter bool      `json:"isSmallerBetter"`
	TeamSize        *int      `json:"teamSize"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Kind converts the stored flags. A row with both or neither flag set is
// reported as an error rather than guessed at.
func (d Discipline) Kind() (discipline.Kind, error) {
	return discipline.KindOf(d.IsTimed, d.IsMeasured)
}

func (d Discipline) Format() (discipline.Format, error) {
	return discipline.NewFormat(d.IsTimed, d.IsMeasured, d.TeamSize)
}
