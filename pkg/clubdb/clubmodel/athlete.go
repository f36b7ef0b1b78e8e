package clubmodel

import "time"

type Athlete struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ClubID     string    `json:"clubId" gorm:"size:36;not null;index"`
	GenderID   string    `json:"genderId" gorm:"size:36;not null"`
	Gender     *Gender   `json:"gender,omitempty" gorm:"foreignKey:GenderID;references:ID"`
	AgeGroupID *string   `json:"ageGroupId" gorm:"size:36"`
	AgeGroup   *AgeGroup `json:"ageGroup,omitempty" gorm:"foreignKey:AgeGroupID;references:ID"`
	FirstName  string    `json:"firstName" gorm:"size:64;not null"`
	LastName   string    `json:"lastName" gorm:"size:64;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (a Athlete) FullName() string {
	return a.FirstName + " " + a.LastName
}
