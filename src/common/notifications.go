package common

import (
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/models/scopes"

	"gorm.io/gorm"
)

const (
	NOTIFICATION_BOOKING_CONFIRMED   = "booking_confirmed"
	NOTIFICATION_GIFT_CARD_PURCHASED = "gift_card_purchased"
)

// Notify queues an in-app message for userID. Callers pass their transaction.
func Notify(tx *gorm.DB, userID uint, kind, message string) error {
	n := models.Notification{UserID: userID, Type: kind, Message: message}
	if err := tx.Create(&n).Error; err != nil {
		return apperrors.NewInternalError("insert notification", err)
	}
	return nil
}

func ListNotifications(db *gorm.DB, userID uint) ([]models.Notification, int64, error) {
	notifications := []models.Notification{}
	err := db.
		Scopes(scopes.ForUser(userID)).
		Order("created_at DESC").
		Find(&notifications).
		Error
	if err != nil {
		return nil, 0, apperrors.NewInternalError("list notifications", err)
	}
	var unread int64
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return notifications, unread, nil
}

func MarkNotificationRead(db *gorm.DB, userID, notificationID uint) error {
	res := db.
		Model(&models.Notification{}).
		Scopes(scopes.WithID(notificationID), scopes.ForUser(userID)).
		Update("read", true)
	if res.Error != nil {
		return apperrors.NewInternalError("mark notification read", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("notification not found")
	}
	return nil
}
