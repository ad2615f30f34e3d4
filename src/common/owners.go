package common

import (
	"errors"
	"staybook/src/apperrors"
	"staybook/src/models"

	"gorm.io/gorm"
)

// GetOwnerByUser returns a forbidden error when the user never became an owner.
func GetOwnerByUser(db *gorm.DB, userID uint) (*models.Owner, error) {
	var owner models.Owner
	err := db.
		Where("user_id = ?", userID).
		First(&owner).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewForbiddenError("not an owner")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("load owner", err)
	}
	return &owner, nil
}

type spotOwnership struct {
	SpotID      uint
	OwnerUserID uint
}

// authorizeSpotOwner resolves the owning user through owners and checks it
// against userID.
func authorizeSpotOwner(tx *gorm.DB, userID, spotID uint) error {
	var row spotOwnership
	res := tx.
		Table("spots").
		Select("spots.id AS spot_id, owners.user_id AS owner_user_id").
		Joins("JOIN owners ON owners.id = spots.owner_id").
		Where("spots.id = ?", spotID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return apperrors.NewInternalError("load spot owner", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("spot not found")
	}
	if row.OwnerUserID != userID {
		return apperrors.NewForbiddenError("you do not own this spot")
	}
	return nil
}

func spotExists(tx *gorm.DB, spotID uint) error {
	var n int64
	if err := tx.Model(&models.Spot{}).Where("id = ?", spotID).Count(&n).Error; err != nil {
		return apperrors.NewInternalError("count spot", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("spot not found")
	}
	return nil
}
