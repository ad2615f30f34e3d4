package models

import (
	"staybook/src/types"
	"time"
)

type Booking struct {
	ID                 uint                `gorm:"primarykey" json:"id"`
	UserID             uint                `gorm:"index;not null" json:"userId"`
	SpotID             uint                `gorm:"index;not null" json:"spotId"`
	StartDate          time.Time           `gorm:"type:date;not null" json:"startDate"`
	EndDate            time.Time           `gorm:"type:date;not null" json:"endDate"`
	Guests             int                 `json:"guests"`
	Status             types.BookingStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	Total              float64             `gorm:"type:numeric(10,2);not null" json:"total"`
	PromotionID        *uint               `json:"promotionId,omitempty"`
	GiftCardPurchaseID *uint               `json:"giftCardPurchaseId,omitempty"`
	PaymentID          *uint               `gorm:"uniqueIndex" json:"paymentId,omitempty"`

	types.Timestamps
}

// Cancellation is 1:1 with Booking.
type Cancellation struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BookingID    uint      `gorm:"uniqueIndex;not null" json:"bookingId"`
	Reason       string    `gorm:"type:text" json:"reason,omitempty"`
	RefundAmount float64   `gorm:"type:numeric(10,2);not null" json:"refundAmount"`
	CancelledAt  time.Time `gorm:"not null" json:"cancelledAt"`

	types.Timestamps
}
