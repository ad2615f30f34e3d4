package controllers

import (
	"errors"
	"net/http"
	"staybook/src/apperrors"
	"staybook/src/common"
	"staybook/src/models"
	"staybook/src/types"
	"staybook/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func loadUser(db *gorm.DB, userID uint) (*models.User, int, error) {
	user, err := common.GetUserByID(db, userID)
	if err != nil {
		return nil, apperrors.From(err).Status(), err
	}
	return user, http.StatusOK, nil
}

func AccountsGetProfile(ctx *gin.Context, db *gorm.DB) (*models.User, int, error) {
	return loadUser(db, ctx.GetUint("id"))
}

// AccountsUpdateProfile only touches the fields present in the body.
func AccountsUpdateProfile(ctx *gin.Context, db *gorm.DB) (*models.User, int, error) {
	var body types.UpdateProfileRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, apperrors.NewValidationError(err.Error())
	}
	userID := ctx.GetUint("id")
	updates := map[string]any{}
	if body.FirstName != nil {
		updates["first_name"] = *body.FirstName
	}
	if body.LastName != nil {
		updates["last_name"] = *body.LastName
	}
	if body.PhoneNumber != nil {
		updates["phone_number"] = *body.PhoneNumber
	}
	if body.Address != nil {
		updates["address"] = *body.Address
	}
	if body.DateOfBirth != nil {
		dob, err := utils.ParseDate(*body.DateOfBirth)
		if err != nil {
			return nil, http.StatusBadRequest, apperrors.NewValidationError(err.Error())
		}
		updates["date_of_birth"] = dob
	}
	if len(updates) > 0 {
		res := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, http.StatusInternalServerError, apperrors.NewInternalError("update profile", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, http.StatusNotFound, apperrors.NewNotFoundError("user not found")
		}
	}
	return loadUser(db, userID)
}

func AccountsChangePassword(ctx *gin.Context, db *gorm.DB) (int, error) {
	var body types.ChangePasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, apperrors.NewValidationError(err.Error())
	}
	user, status, err := loadUser(db, ctx.GetUint("id"))
	if err != nil {
		return status, err
	}
	if !utils.CheckPassword(user.Password, body.CurrentPassword) {
		return http.StatusUnauthorized, apperrors.NewUnauthorizedError("current password is incorrect")
	}
	hash, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return http.StatusInternalServerError, apperrors.NewInternalError("hash password", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash).Error; err != nil {
		return http.StatusInternalServerError, apperrors.NewInternalError("update password", err)
	}
	log.Info().Uint("user_id", user.ID).Msg("Password changed")
	return http.StatusOK, nil
}

// AccountsBecomeOwner is idempotent: an existing owner row is returned as is.
func AccountsBecomeOwner(ctx *gin.Context, db *gorm.DB) (*models.Owner, int, error) {
	userID := ctx.GetUint("id")
	var owners []models.Owner
	if err := db.Where("user_id = ?", userID).Limit(1).Find(&owners).Error; err != nil {
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("load owner", err)
	}
	if len(owners) > 0 {
		return &owners[0], http.StatusOK, nil
	}
	owner := models.Owner{UserID: userID}
	if err := db.Create(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, http.StatusConflict, apperrors.NewConflictError("already an owner")
		}
		return nil, http.StatusInternalServerError, apperrors.NewInternalError("insert owner", err)
	}
	log.Info().Uint("user_id", userID).Uint("owner_id", owner.ID).Msg("User became owner")
	return &owner, http.StatusCreated, nil
}
