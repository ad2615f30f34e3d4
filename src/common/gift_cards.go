package common

import (
	"errors"
	"fmt"
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/types"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	giftCardCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	giftCardCodeLength   = 16
)

func NewGiftCardCode() (string, error) {
	return gonanoid.Generate(giftCardCodeAlphabet, giftCardCodeLength)
}

func ListGiftCards(db *gorm.DB) ([]models.GiftCard, error) {
	cards := []models.GiftCard{}
	if err := db.Order("amount").Find(&cards).Error; err != nil {
		return nil, apperrors.NewInternalError("list gift cards", err)
	}
	return cards, nil
}

// PurchaseGiftCard issues a fresh code and notifies the purchaser.
func PurchaseGiftCard(db *gorm.DB, userID uint, body *types.GiftCardPurchaseRequestBody) (*models.GiftCardPurchase, *models.GiftCard, error) {
	code, err := NewGiftCardCode()
	if err != nil {
		return nil, nil, apperrors.NewInternalError("generate gift card code", err)
	}
	var card models.GiftCard
	var purchase models.GiftCardPurchase
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", body.GiftCardID).First(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("gift card not found")
		}
		if err != nil {
			return apperrors.NewInternalError("load gift card", err)
		}
		purchase = models.GiftCardPurchase{
			GiftCardID:     card.ID,
			UserID:         userID,
			RecipientEmail: body.RecipientEmail,
			Code:           code,
			PurchasedAt:    time.Now(),
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return apperrors.NewInternalError("insert gift card purchase", err)
		}
		return Notify(tx, userID, NOTIFICATION_GIFT_CARD_PURCHASED,
			fmt.Sprintf("Your %s gift card worth %.2f is ready. Code: %s", card.Name, card.Amount, code))
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Uint("gift_card_purchase_id", purchase.ID).Uint("user_id", userID).Msg("Gift card purchased")
	return &purchase, &card, nil
}

// GetGiftCardPurchaseByCode only returns purchases made by userID.
func GetGiftCardPurchaseByCode(db *gorm.DB, userID uint, code string) (*models.GiftCardPurchase, error) {
	var purchase models.GiftCardPurchase
	err := db.Where("code = ?", code).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("gift card purchase not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("load gift card purchase", err)
	}
	if purchase.UserID != userID {
		return nil, apperrors.NewForbiddenError("gift card purchase belongs to another user")
	}
	return &purchase, nil
}
