package clubmodel

import "time"

type AgeGroup struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	ClubID    string    `json:"clubId" gorm:"size:36;not null;uniqueIndex:idx_age_group_club_name"`
	Name      string    `json:"name" gorm:"size:64;not null;uniqueIndex:idx_age_group_club_name"`
	Ordinal   int       `json:"ordinal" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Gender struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"size:32;uniqueIndex;not null"`
}

type Medal struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Position int    `json:"position" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"size:16;not null"`
}
