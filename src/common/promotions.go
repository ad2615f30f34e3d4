package common

import (
	"errors"
	"staybook/src/apperrors"
	"staybook/src/models"
	"staybook/src/models/scopes"
	"staybook/src/types"
	"staybook/src/utils"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CodeCheckResult struct {
	Type               types.CodeType `json:"type"`
	PromotionID        uint           `json:"promotionId,omitempty"`
	DiscountPercent    float64        `json:"discountPercent,omitempty"`
	GiftCardPurchaseID uint           `json:"giftCardPurchaseId,omitempty"`
	Amount             float64        `json:"amount,omitempty"`
}

func ListActivePromotions(db *gorm.DB) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	err := db.
		Scopes(scopes.ActiveOn(utils.Today())).
		Order("promotions.end_date").
		Find(&promotions).
		Error
	if err != nil {
		return nil, apperrors.NewInternalError("list promotions", err)
	}
	return promotions, nil
}

// CheckCode resolves a code against promotions first and unused gift cards
// second. A matching gift card is spent by the check itself and bound to
// userID; the conditional update lets exactly one concurrent caller win it.
func CheckCode(db *gorm.DB, userID uint, code string) (*CodeCheckResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("code is required")
	}

	var promo models.Promotion
	err := db.
		Scopes(scopes.ActiveOn(utils.Today())).
		Where("promotions.code LIKE ?", utils.EscapeLike(code)).
		First(&promo).
		Error
	if err == nil {
		return &CodeCheckResult{
			Type:            types.CODE_PROMOTION,
			PromotionID:     promo.ID,
			DiscountPercent: promo.DiscountPercent,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewInternalError("check promotion", err)
	}

	var gc giftCardValue
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Table("gift_card_purchases").
			Select("gift_card_purchases.id, gift_cards.amount").
			Joins("JOIN gift_cards ON gift_cards.id = gift_card_purchases.gift_card_id").
			Where("gift_card_purchases.code = ? AND gift_card_purchases.used = ?", code, false).
			Limit(1).
			Scan(&gc)
		if res.Error != nil {
			return apperrors.NewInternalError("check gift card", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFoundError("invalid or expired code")
		}
		res = tx.
			Model(&models.GiftCardPurchase{}).
			Where("id = ? AND used = ?", gc.ID, false).
			Updates(map[string]any{"used": true, "used_at": time.Now(), "redeemed_by": userID})
		if res.Error != nil {
			return apperrors.NewInternalError("redeem gift card", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NewNotFoundError("invalid or expired code")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("gift_card_purchase_id", gc.ID).Uint("user_id", userID).Msg("Gift card redeemed")
	return &CodeCheckResult{
		Type:               types.CODE_GIFT_CARD,
		GiftCardPurchaseID: gc.ID,
		Amount:             gc.Amount,
	}, nil
}
