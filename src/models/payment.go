package models

import (
	"staybook/src/types"
	"time"
)

// Payment is recorded as already settled; there is no gateway round trip.
type Payment struct {
	ID     uint                `gorm:"primarykey" json:"id"`
	UserID uint                `gorm:"index;not null" json:"userId"`
	Amount float64             `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method string              `gorm:"type:varchar(32)" json:"method"`
	Status types.PaymentStatus `gorm:"type:varchar(20);index;not null" json:"status"`
	PaidAt time.Time           `json:"paidAt"`

	types.Timestamps
}
