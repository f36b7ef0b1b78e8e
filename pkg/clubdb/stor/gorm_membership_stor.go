package stor

import (
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormMembershipStor struct {
	db *gorm.DB
}

func NewGormMembershipStor(db *gorm.DB) *GormMembershipStor {
	return &GormMembershipStor{db: db}
}

func (s *GormMembershipStor) GetMembership(userID, clubID string) (*clubmodel.UserClub, error) {
	var uc clubmodel.UserClub
	err := s.db.Preload("Club").
		Where("user_id = ? AND club_id = ?", userID, clubID).
		First(&uc).Error
	if err != nil {
		return nil, translate(err, "membership of user %s in club %s", userID, clubID)
	}

	return &uc, nil
}

// GetActiveMembershipsForUser lists the clubs a user can currently act in: the
// membership and the club must both be active.
func (s *GormMembershipStor) GetActiveMembershipsForUser(userID string) ([]clubmodel.UserClub, error) {
	var memberships []clubmodel.UserClub
	err := s.db.Preload("Club").
		Joins("JOIN clubs ON clubs.id = user_clubs.club_id").
		Where("user_clubs.user_id = ? AND user_clubs.active = ? AND clubs.active = ?", userID, true, true).
		Order("clubs.name").
		Find(&memberships).Error
	if err != nil {
		return nil, translate(err, "memberships of user %s", userID)
	}

	return memberships, nil
}

func (s *GormMembershipStor) GetMembersOfClub(clubID string) ([]clubmodel.UserClub, error) {
	var memberships []clubmodel.UserClub
	err := s.db.Preload("User").
		Where("club_id = ?", clubID).
		Order("created_at").
		Find(&memberships).Error
	if err != nil {
		return nil, translate(err, "members of club %s", clubID)
	}

	return memberships, nil
}

// SetMembership creates the (user, club) row or updates its role and active flag.
func (s *GormMembershipStor) SetMembership(userID, clubID, role string, active bool) (*clubmodel.UserClub, error) {
	var uc clubmodel.UserClub

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND club_id = ?", userID, clubID).First(&uc).Error
		switch {
		case err == nil:
			uc.Role = role
			uc.Active = active
			return tx.Model(&uc).Updates(map[string]interface{}{"role": role, "active": active}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			id, idErr := newID()
			if idErr != nil {
				return idErr
			}
			uc = clubmodel.UserClub{ID: id, UserID: userID, ClubID: clubID, Role: role, Active: active}
			return tx.Create(&uc).Error
		default:
			return err
		}
	})

	if err != nil {
		return nil, translate(err, "set membership of user %s in club %s", userID, clubID)
	}

	return &uc, nil
}
