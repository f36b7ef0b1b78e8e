package clubmodel

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
