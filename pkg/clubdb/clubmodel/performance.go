package clubmodel

import (
	"encoding/json"
	"time"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/rules/performance"
	"gorm.io/datatypes"
)

// Performance is a single recorded result. The unique index spans the same
// columns the duplicate check compares so the database settles concurrent
// submissions of the same result.
type Performance struct {
	ID             string         `json:"id" gorm:"primaryKey;size:36"`
	ClubID         string         `json:"clubId" gorm:"size:36;not null;index"`
	AthleteID      string         `json:"athleteId" gorm:"size:36;not null;uniqueIndex:idx_performance_tuple,priority:1"`
	DisciplineID   string         `json:"disciplineId" gorm:"size:36;not null;uniqueIndex:idx_performance_tuple,priority:2"`
	AgeGroupID     string         `json:"ageGroupId" gorm:"size:36;not null;uniqueIndex:idx_performance_tuple,priority:3"`
	GenderID       string         `json:"genderId" gorm:"size:36;not null;uniqueIndex:idx_performance_tuple,priority:4"`
	Date           time.Time      `json:"date" gorm:"not null;uniqueIndex:idx_performance_tuple,priority:5"`
	EventDetails   string         `json:"eventDetails" gorm:"size:255;not null;default:'';uniqueIndex:idx_performance_tuple,priority:6"`
	MedalID        *string        `json:"medalId" gorm:"size:36"`
	TimeSeconds    *float64       `json:"timeSeconds"`
	DistanceMeters *float64       `json:"distanceMeters"`
	ProofFileID    *string        `json:"proofFileId" gorm:"size:64"`
	TeamMembers    datatypes.JSON `json:"teamMembers"`
	IsPersonalBest bool           `json:"isPersonalBest"`
	IsClubRecord   bool           `json:"isClubRecord"`
	CreatedByID    string         `json:"createdById" gorm:"size:36"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (p Performance) DuplicateKey() performance.Key {
	return performance.Key{
		AthleteID:    p.AthleteID,
		DisciplineID: p.DisciplineID,
		AgeGroupID:   p.AgeGroupID,
		GenderID:     p.GenderID,
		Date:         p.Date,
		EventDetails: p.EventDetails,
	}
}

// GetTeamMembers decodes the stored team member athlete ids. Individual
// performances return an empty list.
func (p Performance) GetTeamMembers() ([]string, error) {
	var members []string
	if len(p.TeamMembers) == 0 || string(p.TeamMembers) == "null" {
		return members, nil
	}

	err := json.Unmarshal(p.TeamMembers, &members)
	return members, err
}

func (p *Performance) SetTeamMembers(members []string) error {
	if len(members) == 0 {
		p.TeamMembers = nil
		return nil
	}

	b, err := json.Marshal(members)
	if err != nil {
		return err
	}

	p.TeamMembers = datatypes.JSON(b)
	return nil
}

// ProofUpload records a finished proof-file upload. ID is the upload id the
// upload server assigned.
type ProofUpload struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	ClubID     string    `json:"clubId" gorm:"size:36;not null;index"`
	UploaderID string    `json:"uploaderId" gorm:"size:36;not null"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}
