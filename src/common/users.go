package common

import (
	"errors"
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/models/scopes"

	"gorm.io/gorm"
)

func GetUserByID(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := db.Scopes(scopes.WithID(userID)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("load user", err)
	}
	return &user, nil
}
