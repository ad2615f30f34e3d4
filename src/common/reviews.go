package common

import (
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitReview keeps one review per user and spot; resubmitting overwrites it.
func SubmitReview(db *gorm.DB, userID uint, body *types.SubmitReviewRequestBody) (*models.Review, error) {
	if err := spotExists(db, body.SpotID); err != nil {
		return nil, err
	}
	review := models.Review{
		UserID:  userID,
		SpotID:  body.SpotID,
		Rating:  body.Rating,
		Comment: body.Comment,
	}
	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "spot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).
		Create(&review).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("upsert review", err)
	}
	return &review, nil
}

// ToggleFavorite flips the favorite and reports the state it ends in.
func ToggleFavorite(db *gorm.DB, userID, spotID uint) (bool, error) {
	favorited := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := spotExists(tx, spotID); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND spot_id = ?", userID, spotID).Delete(&models.Favorite{})
		if res.Error != nil {
			return apperrors.NewInternalError("remove favorite", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		if err := tx.Create(&models.Favorite{UserID: userID, SpotID: spotID}).Error; err != nil {
			return apperrors.NewInternalError("add favorite", err)
		}
		favorited = true
		return nil
	})
	return favorited, err
}

func CreateContactMessage(db *gorm.DB, body *types.ContactMessageRequestBody) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:    body.Name,
		Email:   body.Email,
		Subject: body.Subject,
		Message: body.Message,
	}
	if err := db.Create(&msg).Error; err != nil {
		return nil, apperrors.NewInternalError("insert contact message", err)
	}
	return &msg, nil
}
