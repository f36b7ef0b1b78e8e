package clubmodel

import "time"

// Membership roles as stored in user_clubs.role.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleCoach  = "COACH"
	RoleMember = "MEMBER"
)

type Club struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Slug        string    `json:"slug" gorm:"size:160;uniqueIndex"`
	Description string    `json:"description"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserClub is a user's membership of a club. There is at most one row per
// (user, club); deactivating a member flips Active rather than deleting the row.
type UserClub struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"userId" gorm:"size:36;not null;uniqueIndex:idx_user_club"`
	ClubID    string    `json:"clubId" gorm:"size:36;not null;uniqueIndex:idx_user_club"`
	Role      string    `json:"role" gorm:"size:16;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	Club      *Club     `json:"club,omitempty" gorm:"foreignKey:ClubID;references:ID"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserClub) TableName() string {
	return "user_clubs"
}
