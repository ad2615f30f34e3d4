package models

import (
	"staybook/src/types"
	"time"
)

type Promotion struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	Code            string    `gorm:"uniqueIndex;not null" json:"code"`
	Description     string    `json:"description,omitempty"`
	DiscountPercent float64   `gorm:"type:numeric(5,2);not null" json:"discountPercent"`
	StartDate       time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate         time.Time `gorm:"type:date;not null" json:"endDate"`
	Active          bool      `gorm:"index" json:"active"`

	types.Timestamps
}

type GiftCard struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `gorm:"type:numeric(10,2);not null" json:"amount"`

	types.Timestamps
}

// GiftCardPurchase carries a single-use redemption code.
type GiftCardPurchase struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	GiftCardID     uint       `gorm:"index;not null" json:"giftCardId"`
	UserID         uint       `gorm:"index;not null" json:"userId"`
	RecipientEmail string     `json:"recipientEmail,omitempty"`
	Code           string     `gorm:"uniqueIndex;not null" json:"code"`
	Used           bool       `gorm:"index" json:"used"`
	UsedAt         *time.Time `json:"usedAt,omitempty"`
	RedeemedBy     *uint      `gorm:"index" json:"-"`
	PurchasedAt    time.Time  `json:"purchasedAt"`

	types.Timestamps
}
